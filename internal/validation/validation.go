package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "carlog/internal/errors"
)

// RegisterUserInput is the typed registration payload.
type RegisterUserInput struct {
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=6"`
	FullName       string  `json:"full_name" validate:"required"`
	PhoneNumber    *string `json:"phone_number" validate:"omitempty,min=7,max=32"`
	TelegramChatID *string `json:"telegram_chat_id" validate:"omitempty,max=64"`
	Role           string  `json:"role" validate:"omitempty,oneof=user admin"`
}

// ServiceRecordInput is the typed service record payload. Mileage is a
// pointer so that an absent field fails "required" instead of passing as 0.
type ServiceRecordInput struct {
	ServiceType      string    `json:"service_type" validate:"required"`
	ServiceDate      time.Time `json:"service_date" validate:"required"`
	MileageAtService *int      `json:"mileage_at_service" validate:"required,gte=0"`
	Cost             *float64  `json:"cost" validate:"omitempty,gte=0"`
	ServiceProvider  *string   `json:"service_provider" validate:"omitempty,max=255"`
	ServiceLocation  *string   `json:"service_location" validate:"omitempty,max=255"`
	Notes            *string   `json:"notes" validate:"omitempty,max=1024"`
}

// AccidentHistoryInput is the typed accident history payload.
type AccidentHistoryInput struct {
	AccidentDate       time.Time `json:"accident_date" validate:"required"`
	AccidentLocation   *string   `json:"accident_location" validate:"omitempty,max=255"`
	Description        string    `json:"description" validate:"required,max=1024"`
	EstimatedCost      *float64  `json:"estimated_cost" validate:"omitempty,gte=0"`
	InsuranceClaim     bool      `json:"insurance_claim"`
	PoliceReportNumber *string   `json:"police_report_number" validate:"omitempty,max=64"`
	Severity           *string   `json:"severity" validate:"omitempty,oneof=minor moderate severe total_loss"`
}

// Gateway translates untrusted payloads into constraint-satisfying domain
// input, or a ValidationError with one message per offending field.
type Gateway struct {
	validate *validator.Validate
}

// NewGateway builds a Gateway reporting field names by their JSON tag.
func NewGateway() *Gateway {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Gateway{validate: v}
}

// ValidateUser checks a registration payload.
func (g *Gateway) ValidateUser(in *RegisterUserInput) error {
	return g.check(in)
}

// ValidateServiceRecord checks a service record payload.
func (g *Gateway) ValidateServiceRecord(in *ServiceRecordInput) error {
	return g.check(in)
}

// ValidateAccidentHistory checks an accident history payload.
func (g *Gateway) ValidateAccidentHistory(in *AccidentHistoryInput) error {
	return g.check(in)
}

func (g *Gateway) check(in interface{}) error {
	err := g.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperrors.NewValidationError(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(fe.Param()), ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
