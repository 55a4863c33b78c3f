package course

import (
	"math"
	"reflect"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

var (
	weightsTag  = "weights"
	weightsText = "category weights must add up to 100"

	catNamesTag  = "catnames"
	catNamesText = "category names must be unique"

	weightsTotal     = 100.0
	weightsTolerance = 0.01
)

// InitValidators registers the course validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(weightsTag, weightsValidation)
	core.RegisterCustomTranslation(validate, translator, weightsTag, weightsText)

	_ = validate.RegisterValidation(catNamesTag, catNamesValidation)
	core.RegisterCustomTranslation(validate, translator, catNamesTag, catNamesText)
}

func categories(fl validator.FieldLevel) ([]GradeCategory, bool) {
	fld := fl.Field()
	if fld.Kind() == reflect.Ptr {
		if fld.IsNil() {
			return nil, true
		}
		fld = fld.Elem()
	}
	cats, ok := fld.Interface().([]GradeCategory)
	return cats, ok
}

// weightsValidation checks that the weights of non-empty category lists sum to 100.
func weightsValidation(fl validator.FieldLevel) bool {
	cats, ok := categories(fl)
	if !ok {
		return false
	}
	return WeightsValid(cats)
}

// WeightsValid reports whether the category weights sum to 100; no categories at all is valid.
func WeightsValid(cats []GradeCategory) bool {
	if len(cats) == 0 {
		return true
	}
	var total float64
	for _, gc := range cats {
		total += gc.Weight
	}
	return math.Abs(total-weightsTotal) <= weightsTolerance
}

// catNamesValidation checks that category names are unique.
func catNamesValidation(fl validator.FieldLevel) bool {
	cats, ok := categories(fl)
	if !ok {
		return false
	}
	seen := make(map[string]struct{}, len(cats))
	for _, gc := range cats {
		if _, dup := seen[gc.Name]; dup {
			return false
		}
		seen[gc.Name] = struct{}{}
	}
	return true
}
