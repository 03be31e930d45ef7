package dto

// AddCartItemRequest 设置购物车中某本书的数量
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}
