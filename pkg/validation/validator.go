package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for the API enums.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register applies tag names and aliases to v.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt ignores bytes past 72
	v.RegisterAlias("pwd", "min=8,max=72")
	v.RegisterAlias("signuprole", "oneof=CANDIDATE RECRUITER")
	v.RegisterAlias("role", "oneof=CANDIDATE RECRUITER ADMIN")
	v.RegisterAlias("contract", "oneof=CDI CDD STAGE ALTERNANCE FREELANCE INTERIM")
	v.RegisterAlias("offerstatus", "oneof=DRAFT PUBLISHED ARCHIVED")
	v.RegisterAlias("appstatus", "oneof=REVIEWED SHORTLISTED INTERVIEW ACCEPTED REJECTED")
	v.RegisterAlias("moderation", "oneof=APPROVED REJECTED FLAGGED")
	v.RegisterAlias("companystatus", "oneof=PENDING VERIFIED REJECTED")
	v.RegisterAlias("siret", "len=14,numeric")
}

// ToDetails converts validation/binding errors into a map[field]message suitable for API error.details.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "required_with":
		return "is required when " + param + " is present"
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "numeric":
		return "must be numeric"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		if fe.Kind() == reflect.Slice {
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	case "gtefield":
		return "must be greater than or equal to " + param
	case "latitude":
		return "must be a valid latitude"
	case "longitude":
		return "must be a valid longitude"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "dive":
		return "array validation failed"

	case "pwd":
		return "must be between 8 and 72 characters long"
	case "signuprole":
		return "must be one of: CANDIDATE, RECRUITER"
	case "role":
		return "must be one of: CANDIDATE, RECRUITER, ADMIN"
	case "contract":
		return "must be one of: CDI, CDD, STAGE, ALTERNANCE, FREELANCE, INTERIM"
	case "offerstatus":
		return "must be one of: DRAFT, PUBLISHED, ARCHIVED"
	case "appstatus":
		return "must be one of: REVIEWED, SHORTLISTED, INTERVIEW, ACCEPTED, REJECTED"
	case "moderation":
		return "must be one of: APPROVED, REJECTED, FLAGGED"
	case "companystatus":
		return "must be one of: PENDING, VERIFIED, REJECTED"
	case "siret":
		return "must be 14 digits"

	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("validation failed for '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
