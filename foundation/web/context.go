package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Context carries the request through the handler chain. Ctx is the
// context.Context values are attached to (claims in particular); the
// embedded gin context keeps Request, Query and the param helpers.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrors map[string]string
	paramErrors map[string]string
}

func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		body := map[string]interface{}{
			"error":  webErr.Err.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		return c.Respond(body, webErr.Status)
	}

	return c.Respond(map[string]interface{}{
		"error":  "internal server error",
		"status": false,
	}, http.StatusInternalServerError)
}

// GetQueryFunc reads an optional query value coerced to the given kind.
// The result is a typed nil pointer when the value is absent, so callers
// can assert to *int, *string or *bool unconditionally.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		number, err := strconv.Atoi(value)
		if err != nil {
			c.addQueryError(name, "must be an integer")
			return (*int)(nil)
		}
		return &number
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		flag, err := strconv.ParseBool(value)
		if err != nil {
			c.addQueryError(name, "must be a boolean")
			return (*bool)(nil)
		}
		return &flag
	default:
		if !ok {
			return (*string)(nil)
		}
		return &value
	}
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrors) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid query parameters"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrors,
	}
}

// GetParam reads a required path parameter coerced to the given kind.
// Failures are collected and surfaced by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		number, err := strconv.Atoi(value)
		if err != nil {
			c.addParamError(name, "must be an integer")
			return 0
		}
		return number
	default:
		if value == "" {
			c.addParamError(name, "is required")
		}
		return value
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrors) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid path parameters"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrors,
	}
}

// BindFunc binds the request body (json or form) into obj and checks that
// the named fields were provided.
func (c *Context) BindFunc(obj interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(obj); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request body"), http.StatusBadRequest)
	}

	return ValidateStruct(obj, requiredFields...)
}

var validate = validator.New()

// ValidateStruct runs tag validation on obj and requires the named fields
// to be set (non-nil for pointers, non-zero otherwise).
func ValidateStruct(obj interface{}, requiredFields ...string) error {
	fields := map[string]string{}

	value := reflect.ValueOf(obj)
	for value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	for _, name := range requiredFields {
		field := value.FieldByName(name)
		if !field.IsValid() {
			fields[name] = "unknown field"
			continue
		}
		if field.Kind() == reflect.Ptr || field.Kind() == reflect.Slice || field.Kind() == reflect.Map {
			if field.IsNil() {
				fields[name] = "field is required"
			}
			continue
		}
		if field.IsZero() {
			fields[name] = "field is required"
		}
	}

	if err := validate.Struct(obj); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fieldErr := range validationErrors {
				fields[fieldErr.Field()] = fmt.Sprintf("failed on %q", fieldErr.Tag())
			}
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing or invalid"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

func (c *Context) addQueryError(name, reason string) {
	if c.queryErrors == nil {
		c.queryErrors = map[string]string{}
	}
	c.queryErrors[name] = reason
}

func (c *Context) addParamError(name, reason string) {
	if c.paramErrors == nil {
		c.paramErrors = map[string]string{}
	}
	c.paramErrors[name] = reason
}
