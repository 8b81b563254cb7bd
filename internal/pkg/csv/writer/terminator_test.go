package writer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/recordcsv/internal/pkg/csv/writer"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
)

func TestParseLineTerminator(t *testing.T) {
	t.Parallel()

	v, err := writer.ParseLineTerminator("\n")
	require.NoError(t, err)
	assert.Equal(t, writer.LF, v)
	assert.Equal(t, "lf", v.Name())

	v, err = writer.ParseLineTerminator("\r\n")
	require.NoError(t, err)
	assert.Equal(t, writer.CRLF, v)
	assert.Equal(t, "crlf", v.Name())

	for _, invalid := range []string{";", "", "\r", "\n\r", "lf"} {
		_, err = writer.ParseLineTerminator(invalid)
		require.Error(t, err, invalid)
		assert.True(t, svcerrors.IsConfigurationError(err), invalid)
	}

	_, err = writer.ParseLineTerminator(";")
	assert.Equal(t, `line terminator ";" is not supported, expected "\n" or "\r\n"`, err.Error())
}

func TestLineTerminatorFromName(t *testing.T) {
	t.Parallel()

	v, err := writer.LineTerminatorFromName("crlf")
	require.NoError(t, err)
	assert.Equal(t, writer.CRLF, v)

	_, err = writer.LineTerminatorFromName("cr")
	require.Error(t, err)
	assert.True(t, svcerrors.IsConfigurationError(err))
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	v, err := writer.ParseDelimiter(";")
	require.NoError(t, err)
	assert.Equal(t, ';', v)

	v, err = writer.ParseDelimiter("\t")
	require.NoError(t, err)
	assert.Equal(t, '\t', v)

	for _, invalid := range []string{"", ",,", "\n", "\r"} {
		_, err = writer.ParseDelimiter(invalid)
		require.Error(t, err, invalid)
		assert.True(t, svcerrors.IsConfigurationError(err), invalid)
	}
}
