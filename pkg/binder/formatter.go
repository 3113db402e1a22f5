package binder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/segmentio/encoding/json"
)

const (
	mx       = "max"
	mn       = "min"
	ne       = "ne"
	oneof    = "oneof"
	required = "required"
)

func formatUnmarshalTypeError(err *json.UnmarshalTypeError) string {
	return fmt.Sprintf("%q should be of type %s", strings.Trim(err.Field, "."), err.Type)
}

func formatSchemaConversionError(err schema.ConversionError) string {
	return fmt.Sprintf("%q should be of type %s", err.Key, err.Type)
}

func formatValidationError(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case mx:
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%q should be at most %s characters long", field, err.Param())
		}
		return fmt.Sprintf("%q should be at most %s", field, err.Param())
	case mn:
		if err.Kind() == reflect.String {
			return fmt.Sprintf("%q should be at least %s characters long", field, err.Param())
		}
		return fmt.Sprintf("%q should be at least %s", field, err.Param())
	case ne:
		return fmt.Sprintf("%q can't be %s", field, err.Param())
	case oneof:
		return fmt.Sprintf("%q should be one of: %s", field, strings.Join(strings.Split(err.Param(), " "), ", "))
	case required:
		return fmt.Sprintf("%q is required", field)
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
