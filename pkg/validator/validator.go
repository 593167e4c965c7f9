package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, fieldError := range validationErrors {
			message := getFieldErrorMessage(fieldError)
			messages = append(messages, message)
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "latitude":
		return fmt.Sprintf("%s must be a valid latitude between -90 and 90", field)
	case "longitude":
		return fmt.Sprintf("%s must be a valid longitude between -180 and 180", field)
	case "min":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Type().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"SenderName":            "Sender name",
		"Latitude":              "Latitude",
		"Longitude":             "Longitude",
		"Name":                  "Name",
		"Phone":                 "Phone",
		"Relationship":          "Relationship",
		"Email":                 "Email",
		"BloodGroup":            "Blood group",
		"EmergencyContactName":  "Emergency contact name",
		"EmergencyContactPhone": "Emergency contact phone",
		"Message":               "Message",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
