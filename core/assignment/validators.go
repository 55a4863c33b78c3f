package assignment

import (
	"reflect"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

var (
	priorityTag  = "priority"
	priorityText = "priority must be one of low, medium or high"

	statusTag  = "status"
	statusText = "status must be one of pending or completed"
)

// InitValidators registers the assignment validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(priorityTag, priorityValidation)
	core.RegisterCustomTranslation(validate, translator, priorityTag, priorityText)

	_ = validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(validate, translator, statusTag, statusText)
}

func priorityValidation(fl validator.FieldLevel) bool {
	fld := fl.Field()
	return fld.Kind() == reflect.String && Priority(fld.String()).IsValid()
}

func statusValidation(fl validator.FieldLevel) bool {
	fld := fl.Field()
	return fld.Kind() == reflect.String && Status(fld.String()).IsValid()
}
