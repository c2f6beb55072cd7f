package http

import (
	"fmt"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"charm-money/internal/cmi"
	"charm-money/internal/service"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators agrega al validator de gin las reglas del cuestionario:
// likert (1..5), questionid (id del banco) y cmicode (codigo corto).
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		rules := []struct {
			tag string
			fn  validator.Func
		}{
			{"likert", validateLikert},
			{"questionid", validateQuestionID},
			{"cmicode", validateResultCode},
		}
		for _, r := range rules {
			if err := v.RegisterValidation(r.tag, r.fn); err != nil {
				registerErr = fmt.Errorf("register %s validator: %w", r.tag, err)
				return
			}
		}
	})
	return registerErr
}

func validateLikert(fl validator.FieldLevel) bool {
	n := fl.Field().Int()
	return n >= 1 && n <= 5
}

func validateQuestionID(fl validator.FieldLevel) bool {
	_, ok := cmi.QuestionByID(fl.Field().String())
	return ok
}

func validateResultCode(fl validator.FieldLevel) bool {
	return service.IsValidResultCode(fl.Field().String())
}
