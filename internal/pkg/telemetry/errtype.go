package telemetry

import (
	"context"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// ErrorType returns a low-cardinality name of the error, for example "validation" or "io".
func ErrorType(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	}

	var named interface{ ErrorName() string }
	if errors.As(err, &named) {
		return named.ErrorName()
	}

	return "other"
}
