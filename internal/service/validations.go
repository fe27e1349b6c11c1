package service

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	errorvalues "github.com/limbo/fitlog/internal/error_values"
)

// Package for custom validations
var (
	validate *validator.Validate
	once     sync.Once
)

func InitValidator() {
	once.Do(func() {
		validate = validator.New()
		err := validate.RegisterValidation("minutes", func(fl validator.FieldLevel) bool {
			minutes, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
			if err != nil {
				return false
			}
			// Zero-length sessions are allowed, negative ones are not
			return minutes >= 0 && minutes <= MaxWorkoutMinutes
		})
		if err != nil {
			log.Fatal("registering minutes validation error: " + err.Error())
		}
	})
}

func validateRequest(req any) error {
	InitValidator()
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		err = errorvalues.ErrValidation
		for _, fieldErr := range validationErrors {
			err = errors.Join(err, fieldErr)
		}
		return err
	}
	return errors.New("validation unexpected error: " + err.Error())
}
