package errors_test

import (
	"fmt"
	"io"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

func ExampleErrorf() {
	err := errors.Errorf("cannot write output: %w", io.ErrShortWrite)
	fmt.Println(err)
	fmt.Println(errors.Is(err, io.ErrShortWrite))
	// output:
	// cannot write output: short write
	// true
}

func ExampleFormatWithUnwrap() {
	err := errors.Wrapf(io.ErrShortWrite, "cannot write line %d", 3)
	fmt.Println(errors.Format(err))
	fmt.Println(errors.Format(err, errors.FormatWithUnwrap()))
	// output:
	// cannot write line 3
	// cannot write line 3 (*errors.wrappedError):
	// - short write
}

func ExampleFormatAsSentences() {
	err := errors.NewNestedError(
		errors.New("invalid configuration"),
		errors.New(`"delimiter" is a required field`),
		errors.New(`"lineTerminator" must be one of [lf crlf]`),
	)
	fmt.Println(errors.Format(err))
	fmt.Println(errors.Format(err, errors.FormatAsSentences()))
	// output:
	// invalid configuration:
	// - "delimiter" is a required field
	// - "lineTerminator" must be one of [lf crlf]
	// Invalid configuration:
	// - "delimiter" is a required field.
	// - "lineTerminator" must be one of [lf crlf].
}

func ExamplePrefixError() {
	short := errors.PrefixError(errors.New("file does not exist"), `cannot read schema file "a.yaml"`)
	long := errors.PrefixError(errors.New("open /very/long/path/to/the/schema.yaml: no such file or directory"), "cannot read schema file")
	fmt.Println(short)
	fmt.Println(long)
	// output:
	// cannot read schema file "a.yaml": file does not exist
	// cannot read schema file:
	// - open /very/long/path/to/the/schema.yaml: no such file or directory
}

func Example_multiError() {
	errs := errors.NewMultiError()
	errs.Append(errors.New("record 1 is nil"))

	sub := errs.AppendNested(errors.New("invalid record 2"))
	sub.Append(errors.New(`attribute "x" is not declared`))
	sub.Append(errors.New(`attribute "y" is not declared`))

	errs.AppendWithPrefixf(errors.New("composite value"), "record %d", 3)

	fmt.Println(errors.Format(errs))
	// output:
	// - record 1 is nil
	// - invalid record 2:
	//   - attribute "x" is not declared
	//   - attribute "y" is not declared
	// - record 3: composite value
}

func Example_multiErrorSingle() {
	errs := errors.NewMultiError()
	errs.AppendWithPrefixf(errors.New(`value "abc" is not an int`), `invalid attribute "field1" of the type "%s"`, "validPojo")
	fmt.Println(errs.Error())
	fmt.Println(errors.PrefixError(errors.New(`record must be a struct, found "string"`), "cannot get type of the record 2"))
	// output:
	// invalid attribute "field1" of the type "validPojo":
	// - value "abc" is not an int
	// cannot get type of the record 2:
	// - record must be a struct, found "string"
}
