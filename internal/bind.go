package internal

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dmitrymomot/storefront/pkg/sanitizer"
	"github.com/dmitrymomot/storefront/pkg/validator"
)

// validatable is implemented by bound structs that check themselves.
type validatable interface {
	Validate() error
}

// bindAndValidate decodes values into v, sanitizes it and runs its Validate method.
func (c *requestContext) bindAndValidate(values url.Values, v any, label string) (ValidationErrors, error) {
	if err := decodeValues(values, v); err != nil {
		return nil, ErrBadRequest(label, WithMessageKey("errors.bad_request"), WithError(err))
	}
	if err := sanitizer.Apply(v); err != nil && !errors.Is(err, sanitizer.ErrNotStructPointer) {
		return nil, fmt.Errorf("sanitize: %w", err)
	}

	val, ok := v.(validatable)
	if !ok {
		return nil, nil
	}
	err := val.Validate()
	switch {
	case err == nil:
		return nil, nil
	case validator.IsValidationError(err):
		ve := validator.ExtractValidationErrors(err)
		if tr := c.Translator(); tr != nil {
			ve.Translate(tr.TranslateValidation)
		}
		return ve, nil
	default:
		return nil, fmt.Errorf("validate: %w", err)
	}
}

// decodeValues maps url.Values onto a struct: single values decode into
// scalar fields, repeated keys into slices. A repeated key bound to a scalar
// field keeps its first value.
func decodeValues(values url.Values, v any) error {
	input := make(map[string]any, len(values))
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			input[k] = vs[0]
		default:
			input[k] = vs
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "form",
		WeaklyTypedInput: true,
		Result:           v,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			firstValueHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func firstValueHook(from, to reflect.Type, data any) (any, error) {
	vs, ok := data.([]string)
	if !ok || from.Kind() != reflect.Slice || len(vs) == 0 {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Slice, reflect.Array, reflect.Interface:
		return data, nil
	}
	return vs[0], nil
}
