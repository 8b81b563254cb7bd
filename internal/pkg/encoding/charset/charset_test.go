package charset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/recordcsv/internal/pkg/encoding/charset"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		utf8 bool
	}{
		{name: "", utf8: true},
		{name: "utf8", utf8: true},
		{name: "UTF-8", utf8: true},
		{name: "ISO-8859-1", utf8: false},
		{name: "windows-1250", utf8: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, err := charset.Resolve(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.utf8, c.IsUTF8())
		})
	}
}

func TestResolve_Unsupported(t *testing.T) {
	t.Parallel()
	_, err := charset.Resolve("foo-bar")
	require.Error(t, err)
	assert.Equal(t, `charset "foo-bar" is not supported`, err.Error())
}

func TestCharset_Encode(t *testing.T) {
	t.Parallel()

	out, err := charset.MustResolve("ISO-8859-1").Encode("café")
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'a', 'f', 0xE9}, out)

	out, err = charset.MustResolve("utf8").Encode("café")
	require.NoError(t, err)
	assert.Equal(t, []byte("café"), out)

	_, err = charset.MustResolve("ISO-8859-1").Encode("€uro")
	require.Error(t, err)
}
