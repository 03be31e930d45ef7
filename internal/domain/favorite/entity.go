package favorite

import "time"

// Favorite 用户收藏，(user, book)唯一
type Favorite struct {
	ID        uint
	UserID    uint
	BookID    uint
	CreatedAt time.Time
}

// NewFavorite 创建收藏
func NewFavorite(userID, bookID uint) *Favorite {
	return &Favorite{UserID: userID, BookID: bookID, CreatedAt: time.Now()}
}
