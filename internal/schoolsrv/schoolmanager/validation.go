package schoolmanager

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/siakadlabs/siakad-internal/internal/common/apperrors"
	"github.com/siakadlabs/siakad-internal/internal/schoolsrv/policy"
	"github.com/siakadlabs/siakad-internal/pkg/types"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// V returns the shared validator, configured with the domain tags.
func V() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonTagName)
		validate.RegisterValidation("attendanceStatus", validAttendanceStatus)
		validate.RegisterValidation("examKind", validExamKind)
		validate.RegisterValidation("academicYear", validAcademicYear)
	})
	return validate
}

// jsonTagName makes validation errors report json field names.
func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validAttendanceStatus(fl validator.FieldLevel) bool {
	switch types.AttendanceStatus(fl.Field().String()) {
	case types.AttendancePresent, types.AttendanceSick, types.AttendanceLeave, types.AttendanceAbsent:
		return true
	}
	return false
}

var examKinds = map[string]bool{
	"daily": true, "midterm": true, "final": true, "practice": true,
}

func validExamKind(fl validator.FieldLevel) bool {
	return examKinds[fl.Field().String()]
}

// validAcademicYear accepts the "2025/2026" form.
func validAcademicYear(fl validator.FieldLevel) bool {
	parts := strings.Split(fl.Field().String(), "/")
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 4 {
		return false
	}
	for _, p := range parts {
		for _, r := range p {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}

// validateSchema runs the validator and folds failures into a single
// ValidationFailure error listing every offending field.
func validateSchema(schema any) apperrors.Error {
	err := V().Struct(schema)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return policy.ErrValidation.Err(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, "missing required attribute: "+e.Field())
		case "uuid":
			msgs = append(msgs, "invalid id format: "+e.Field())
		default:
			msgs = append(msgs, "invalid value for: "+e.Field())
		}
	}
	return policy.ErrValidation.Msg("validation failed: " + strings.Join(msgs, "; "))
}
