package service

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		// 24h wall-clock value like "09:30" or "21:05"
		validate.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if len(value) != 5 || value[2] != ':' {
				return false
			}
			for _, i := range []int{0, 1, 3, 4} {
				if value[i] < '0' || value[i] > '9' {
					return false
				}
			}
			hour := int(value[0]-'0')*10 + int(value[1]-'0')
			minute := int(value[3]-'0')*10 + int(value[4]-'0')
			return hour < 24 && minute < 60
		})
	})
}
