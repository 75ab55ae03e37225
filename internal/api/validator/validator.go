package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/KALU56/E-Self/internal/api/contract"
	"github.com/KALU56/E-Self/internal/constants"
	"github.com/KALU56/E-Self/internal/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, metrics *metrics.Metrics) IXValidator {
	for key, function := range valid {
		validator.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

// Validator parses the request body into data and validates it, answering
// 422 with one message per failed field when validation fails.
func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.Response) {
	start := time.Now()

	c.BodyParser(&data)

	errs := x.Validate(data)
	if len(errs) == 0 {
		if x.metrics != nil {
			x.metrics.RecordValidationDuration("validation_success", time.Since(start))
		}
		return responseErr
	}

	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, fmt.Sprintf(message, err.FailedField))

		if x.metrics != nil {
			x.metrics.RecordValidationError(err.FailedField, err.Tag)
		}
	}

	if x.metrics != nil {
		x.metrics.RecordValidationDuration("validation_error", time.Since(start))
	}

	c.Status(fiber.StatusUnprocessableEntity)

	return contract.Response{
		Code:    constants.ErrCodeValidationFailed,
		Message: strings.Join(messages, " and "),
	}
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)
		}
	}
	return validationErrors
}
