package dto

// CreateReviewRequest 评分范围和评价长度由领域层校验
type CreateReviewRequest struct {
	BookID  uint   `json:"book_id" binding:"required" example:"1"`
	Rating  int    `json:"rating" example:"5"`
	Comment string `json:"comment" example:"非常好的一本书"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" example:"4"`
	Comment string `json:"comment"`
}

// BookReviewsQuery include_pending只对管理员生效
type BookReviewsQuery struct {
	IncludePending bool `form:"include_pending"`
}
