package dto

// PageQuery 分页参数，超出范围的值由应用层修正
type PageQuery struct {
	Page     int `form:"page" example:"1"`
	PageSize int `form:"page_size" example:"20"`
}

// IDResult 只返回ID的操作结果
type IDResult struct {
	ID uint `json:"id" example:"1"`
}

// BoolResult 删除、清空等操作的结果，false表示没有可处理的数据
type BoolResult struct {
	Success bool `json:"success" example:"true"`
}
