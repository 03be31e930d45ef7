package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/leafside/internal/domain/book"
)

// RegisterValidators 向gin的validator注册自定义校验tag，启动时调用一次
//
//	isbn: ISBN-10或ISBN-13，允许连字符和空格
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("isbn", func(fl validator.FieldLevel) bool {
		return book.IsValidISBN(fl.Field().String())
	})
}
