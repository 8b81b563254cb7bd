package cli

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/keboola/recordcsv/internal/pkg/log"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
)

// ProcessPanic logs the recovered panic and returns the exit code.
func ProcessPanic(ctx context.Context, recovered any, logger log.Logger, logFilePath string) int {
	logger.Debugf(ctx, "Unexpected panic: %s", recovered)
	logger.Debugf(ctx, "Trace:\n%s", debug.Stack())

	msg := fmt.Sprintf("Unexpected panic: %s\n\nPlease report the problem", recovered)
	if logFilePath != "" {
		msg += fmt.Sprintf(` and attach the log file "%s"`, logFilePath)
	} else {
		msg += `, run the command again with the "--log-file" flag to get details`
	}
	logger.Error(ctx, msg+".")

	return svcerrors.ExitCodeUnknown
}
