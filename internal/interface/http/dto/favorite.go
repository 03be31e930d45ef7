package dto

type AddFavoriteRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// FavoriteStatus 是否已收藏
type FavoriteStatus struct {
	BookID     uint `json:"book_id"`
	IsFavorite bool `json:"is_favorite"`
}

type CountResult struct {
	Count int64 `json:"count"`
}
