package lifecycle

import (
	"reflect"
	"strings"
	"venue-booking-backend/cmd/venue-booking/model"
	"venue-booking-backend/cmd/venue-booking/timeslot"
	"venue-booking-backend/cmd/venue-booking/venue"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

func newValidator(catalog *venue.Catalog) *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterValidation("venue", func(fl validator.FieldLevel) bool {
		return catalog.Contains(fl.Field().String())
	})
	v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return timeslot.Valid(fl.Field().String())
	})
	v.RegisterValidation("day", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDay(fl.Field().String())
		return err == nil
	})

	return v
}

// validateStruct reports the first failing field as a ValidationError.
func (s *Service) validateStruct(req any) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return validationf("%v", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return validationf("%s is required", fe.Field())
	case "email":
		return validationf("%s is not a valid email address", fe.Field())
	case "venue":
		return validationf("venue %q is not in the catalog", fe.Value())
	case "timeslot":
		return validationf("time slot %q is malformed", fe.Value())
	case "day":
		return validationf("date %q is not a YYYY-MM-DD date", fe.Value())
	}
	return validationf("%s is invalid", fe.Field())
}
