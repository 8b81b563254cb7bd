package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct1 struct {
	Field1      string `json:"field1" validate:"required"`
	Field2      string `configKey:"field2" validate:"required"`
	Field3      string `json:"-" validate:"required"`
	Field4      string `validate:"required"`
	Field5      string `json:"field5" validate:"oneof=lf crlf"`
	testStruct2        // anonymous
}

type testStruct2 struct {
	Field6 string `json:"field6" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()
	err := New().Validate(context.Background(), testStruct1{Field5: "foo"})
	expected := `
- "field1" is a required field
- "field2" is a required field
- "Field3" is a required field
- "Field4" is a required field
- "field5" must be one of [lf crlf]
- "field6" is a required field
`
	require.Error(t, err)
	assert.Equal(t, strings.TrimSpace(expected), err.Error())
}

func TestValidateStruct_Valid(t *testing.T) {
	t.Parallel()
	value := testStruct1{Field1: "a", Field2: "b", Field3: "c", Field4: "d", Field5: "crlf", testStruct2: testStruct2{Field6: "e"}}
	assert.NoError(t, New().Validate(context.Background(), &value))
}

func TestValidateValueAddNamespace(t *testing.T) {
	t.Parallel()
	err := New().ValidateCtx(context.Background(), "", "required", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value" is a required field`, err.Error())
}

func TestValidateErrorMsgFunc(t *testing.T) {
	t.Parallel()
	rule := Rule{
		Tag: "my_rule",
		Func: func(ctx context.Context, fl validator.FieldLevel) bool {
			return false
		},
		ErrorMsgFunc: func(fe validator.FieldError) string {
			if fe.Value() == "foo" {
				return "error message for foo"
			}
			return "other error message"
		},
	}

	err := New(rule).ValidateCtx(context.Background(), "foo", "my_rule", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value" error message for foo`, err.Error())

	err = New(rule).ValidateCtx(context.Background(), "other", "my_rule", "my.value")
	require.Error(t, err)
	assert.Equal(t, `"my.value" other error message`, err.Error())
}

func TestValidateErrorMsg(t *testing.T) {
	t.Parallel()
	rule := Rule{
		Tag: "single_char",
		Func: func(ctx context.Context, fl validator.FieldLevel) bool {
			return len([]rune(fl.Field().String())) == 1
		},
		ErrorMsg: "{0} must be a single character",
	}

	type config struct {
		Delimiter string `json:"delimiter" validate:"single_char"`
	}

	v := New(rule)
	assert.NoError(t, v.Validate(context.Background(), config{Delimiter: ";"}))

	err := v.Validate(context.Background(), config{Delimiter: ";;"})
	require.Error(t, err)
	assert.Equal(t, `"delimiter" must be a single character`, err.Error())
}

func TestValidatorRequiredNotEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	v := New()

	// String
	err := v.ValidateCtx(ctx, `value`, `required_not_empty`, `some_field`)
	require.NoError(t, err)
	err = v.ValidateCtx(ctx, ``, `required_not_empty`, `some_field`)
	require.Error(t, err)
	assert.Equal(t, `"some_field" is a required field`, err.Error())

	// Array
	err = v.ValidateCtx(ctx, []int{1, 2, 3}, `required_not_empty`, `some_field`)
	require.NoError(t, err)
	err = v.ValidateCtx(ctx, []int{}, `required_not_empty`, `some_field`)
	require.Error(t, err)
	assert.Equal(t, `"some_field" is a required field`, err.Error())
}
