// Package validation registers the form rules shared by both apps with gin's
// validator engine.
package validation

import (
	"errors"
	"regexp"
	"sync"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom tags. It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"phone":    validatePhone,
		"usstate":  validateState,
		"genre":    validateGenre,
		"showtime": validateShowTime,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

func validateState(fl validator.FieldLevel) bool {
	return models.IsState(fl.Field().String())
}

func validateGenre(fl validator.FieldLevel) bool {
	return models.IsGenre(fl.Field().String())
}

func validateShowTime(fl validator.FieldLevel) bool {
	_, err := models.ParseShowTime(fl.Field().String())
	return err == nil
}

// IsValidationError reports whether err came from struct validation rather
// than from decoding the request body.
func IsValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

// Messages turns validation failures into one readable line per field.
func Messages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe))
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "phone":
		return field + " must look like 123-456-7890"
	case "usstate":
		return field + " must be a US state code"
	case "genre":
		return field + " contains an unknown genre"
	case "unique":
		return field + " must not repeat a value"
	case "showtime":
		return field + " must look like 2006-01-02 15:04:05"
	case "url":
		return field + " must be a valid URL"
	case "min":
		return field + " needs at least " + fe.Param()
	case "max":
		return field + " allows at most " + fe.Param()
	}
	return field + " is invalid"
}
