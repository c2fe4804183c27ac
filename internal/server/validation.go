package server

import (
	"time"

	"gymcore/internal/clock"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators adds the domain formats used in request
// bindings: "clocktime" for HH:MM fields and "weekday" for full
// weekday names.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("clocktime", func(fl validator.FieldLevel) bool {
		_, err := clock.ParseClockTime(fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		for d := time.Sunday; d <= time.Saturday; d++ {
			if d.String() == name {
				return true
			}
		}
		return false
	})
}
