package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^01[016789][0-9]{7,8}$`)

// ValidatePhone 验证手机号格式
func ValidatePhone(fl validator.FieldLevel) bool {
	phone, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return phonePattern.MatchString(phone)
}

// IsValidPhone 供非 binding 场景复用的手机号校验
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
