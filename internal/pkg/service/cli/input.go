package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/keboola/recordcsv/internal/pkg/record"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// inputJSON keeps numbers as json.Number, so integers are not converted to float64.
var inputJSON = jsoniter.Config{ //nolint:gochecknoglobals
	UseNumber:              true,
	DisallowUnknownFields:  true,
	ValidateJsonRawMessage: true,
}.Froze()

// ReadRecords reads JSON lines, each line is one record: {"type": "<name>", "values": {...}}.
// Empty lines are skipped.
func ReadRecords(ctx context.Context, r io.Reader) ([]any, error) {
	reader := bufio.NewReader(r)
	errs := errors.NewMultiError()
	var records []any
	for lineNum := 1; ; lineNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return nil, errors.PrefixError(readErr, "cannot read input")
		}

		if line = bytes.TrimSpace(line); len(line) > 0 {
			var rec record.Dynamic
			if err := inputJSON.Unmarshal(line, &rec); err != nil {
				errs.AppendWithPrefixf(err, "invalid JSON on line %d", lineNum)
			} else {
				records = append(records, rec)
			}
		}

		if readErr != nil {
			break
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, svcerrors.NewValidationError(err)
	}

	return records, nil
}
