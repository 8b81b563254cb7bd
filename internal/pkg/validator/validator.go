// Package validator wraps go-playground/validator with english error messages
// and with support for custom rules, see Rule.
package validator

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const nestedName = "__nested__"

// Rule is a custom validation rule.
type Rule struct {
	Tag  string
	Func validator.FuncCtx
	// ErrorMsg is used if ErrorMsgFunc is not set, "{0}" is replaced by the field name.
	ErrorMsg string
	// ErrorMsgFunc generates an error message for the failed field, the field name is added as a prefix.
	ErrorMsgFunc func(fe validator.FieldError) string
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
	rules      map[string]Rule
}

func New(rules ...Rule) *Validator {
	v := &Validator{validate: validator.New(), rules: make(map[string]Rule)}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v.validate, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}
	v.translator = translator

	// Register default rules
	rules = append([]Rule{
		{
			Tag: "required_not_empty",
			Func: func(ctx context.Context, fl validator.FieldLevel) bool {
				field := fl.Field()
				switch field.Kind() {
				case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
					return field.Len() > 0
				default:
					return field.IsValid() && !field.IsZero()
				}
			},
			ErrorMsg: "{0} is a required field",
		},
	}, rules...)

	// Register custom rules
	for _, rule := range rules {
		if err := v.validate.RegisterValidationCtx(rule.Tag, rule.Func); err != nil {
			panic(err)
		}
		if rule.ErrorMsg != "" {
			v.registerTranslation(rule.Tag, rule.ErrorMsg)
		}
		v.rules[rule.Tag] = rule
	}

	// Set "__nested__" name for anonymous fields, so they can be removed from the error namespace.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return nestedName
		}

		// Use JSON field name in error messages, or the config key
		for _, tag := range []string{"json", "configKey"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			} else if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Validate a struct or a slice of structs.
func (v *Validator) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

// ValidateCtx validates the value by the tag, errors are prefixed by the namespace.
func (v *Validator) ValidateCtx(ctx context.Context, value any, tag string, namespace string) error {
	// Struct is validated by the struct tags
	if tag == "dive" {
		kind := reflect.ValueOf(value).Kind()
		if kind == reflect.Pointer {
			kind = reflect.ValueOf(value).Elem().Kind()
		}
		if kind == reflect.Struct {
			return v.processError(v.validate.StructCtx(ctx, value), namespace)
		}
	}
	return v.processError(v.validate.VarCtx(ctx, value, tag), namespace)
}

func (v *Validator) registerTranslation(tag, msg string) {
	err := v.validate.RegisterTranslation(
		tag,
		v.translator,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field())
			return t
		},
	)
	if err != nil {
		panic(err)
	}
}

func (v *Validator) processError(err error, namespace string) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	result := errors.NewMultiError()
	for _, e := range validationErrs {
		result.Append(v.formatError(e, namespace))
	}
	return result.ErrorOrNil()
}

func (v *Validator) formatError(e validator.FieldError, namespace string) error {
	// Get message without the field name
	var msg string
	if rule, ok := v.rules[e.Tag()]; ok && rule.ErrorMsgFunc != nil {
		msg = rule.ErrorMsgFunc(e)
	} else {
		msg = strings.TrimSpace(strings.TrimPrefix(e.Translate(v.translator), e.Field()))
	}

	// Prefix message by the field path
	path := processNamespace(e.Namespace())
	if namespace != "" {
		path = strings.Trim(namespace+"."+path, ".")
	}
	if path == "" {
		return errors.New(msg)
	}
	return errors.Errorf(`"%s" %s`, path, msg)
}

// processNamespace removes struct name (first part) and __nested__ parts.
func processNamespace(namespace string) string {
	namespace = strings.ReplaceAll(namespace, nestedName+".", "")
	parts := strings.SplitN(namespace, ".", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
