package cli_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/service/cli"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
)

func TestProcessPanic(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	exitCode := cli.ProcessPanic(context.Background(), "oops", logger, "/path/to/log.txt")
	assert.Equal(t, svcerrors.ExitCodeUnknown, exitCode)

	messages := logger.AllMessages()
	assert.Contains(t, messages, "DEBUG  Unexpected panic: oops")
	assert.Contains(t, messages, "DEBUG  Trace:")
	assert.Contains(t, messages, `ERROR  Unexpected panic: oops`)
	assert.Contains(t, messages, `Please report the problem and attach the log file "/path/to/log.txt".`)
}

func TestProcessPanic_NoLogFile(t *testing.T) {
	t.Parallel()

	logger := log.NewDebugLogger()
	cli.ProcessPanic(context.Background(), "oops", logger, "")
	assert.Contains(t, logger.ErrorMessages(), `run the command again with the "--log-file" flag`)
}
