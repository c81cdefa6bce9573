package handlers

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	currencyCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
	registerOnce        sync.Once
)

// validCurrencyCode accepts any three-letter code. Whether a rate exists for it
// is decided by the rate table, not here.
func validCurrencyCode(fl validator.FieldLevel) bool {
	return currencyCodePattern.MatchString(fl.Field().String())
}

// RegisterValidators adds the custom binding rules to gin's validator engine.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("currency", validCurrencyCode)
		}
	})
}
