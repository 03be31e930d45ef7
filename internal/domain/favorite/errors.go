package favorite

import (
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

var (
	ErrFavoriteDuplicate = apperrors.New(apperrors.ErrCodeFavoriteDuplicate, "已经收藏过这本书")
)
