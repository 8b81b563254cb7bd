package cli_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keboola/recordcsv/internal/pkg/service/cli"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
)

const testSchema = `
types:
  - name: Person
    attributes:
      - {name: name, type: string}
      - {name: age, type: int}
  - name: Employee
    parent: Person
    attributes:
      - {name: salary, type: float}
`

const testInput = `{"type": "Person", "values": {"name": "Ann", "age": 30}}

{"type": "Employee", "values": {"name": "Bob", "salary": 1.5}}
`

type testCLI struct {
	fs     afero.Fs
	env    map[string]string
	stdin  *bytes.Buffer
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newTestCLI(t *testing.T) *testCLI {
	t.Helper()
	c := &testCLI{
		fs:     afero.NewMemMapFs(),
		env:    make(map[string]string),
		stdin:  &bytes.Buffer{},
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	require.NoError(t, afero.WriteFile(c.fs, "/schema.yaml", []byte(testSchema), 0o600))
	return c
}

func (c *testCLI) run(args ...string) int {
	lookupEnv := func(key string) (string, bool) {
		v, ok := c.env[key]
		return v, ok
	}
	root := cli.NewRootCommand(c.stdin, c.stdout, c.stderr, c.fs, lookupEnv)
	root.SetArgs(args)
	return root.Execute(context.Background())
}

func TestConvert_StdinToStdout(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.stdin.WriteString(testInput)

	exitCode := c.run("convert", "--schema", "/schema.yaml")
	assert.Equal(t, svcerrors.ExitCodeOK, exitCode, c.stderr.String())
	assert.Equal(t, "name,age,salary\nAnn,30,\nBob,,1.5\n", c.stdout.String())
	assert.Empty(t, c.stderr.String())
}

func TestConvert_FileToFile(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	require.NoError(t, afero.WriteFile(c.fs, "/input.jsonl", []byte(testInput), 0o600))

	exitCode := c.run("convert", "-s", "/schema.yaml", "-i", "/input.jsonl", "-o", "/out.csv", "--compression-type", "gzip")
	assert.Equal(t, svcerrors.ExitCodeOK, exitCode, c.stderr.String())
	assert.Empty(t, c.stdout.String())
	assert.Contains(t, c.stderr.String(), `Written 2 records to "/out.csv.gz".`)

	file, err := c.fs.Open("/out.csv.gz")
	require.NoError(t, err)
	defer file.Close()
	reader, err := gzip.NewReader(file)
	require.NoError(t, err)
	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "name,age,salary\nAnn,30,\nBob,,1.5\n", string(content))
}

func TestConvert_ConfigFileAndEnv(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.stdin.WriteString(testInput)
	c.env["RECORDCSV_SCHEMA"] = "/schema.yaml"
	c.env["RECORDCSV_CONFIG_FILE"] = "/config.yaml"
	require.NoError(t, afero.WriteFile(c.fs, "/config.yaml", []byte("delimiter: \";\"\nlineTerminator: crlf\n"), 0o600))

	exitCode := c.run("convert")
	assert.Equal(t, svcerrors.ExitCodeOK, exitCode, c.stderr.String())
	assert.Equal(t, "name;age;salary\r\nAnn;30;\r\nBob;;1.5\r\n", c.stdout.String())
}

func TestConvert_Verbose(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	c.stdin.WriteString(testInput)

	exitCode := c.run("convert", "--schema", "/schema.yaml", "--verbose")
	assert.Equal(t, svcerrors.ExitCodeOK, exitCode, c.stderr.String())
	assert.Equal(t, "name,age,salary\nAnn,30,\nBob,,1.5\n", c.stdout.String())
	assert.Contains(t, c.stderr.String(), "DEBUG")
	assert.Contains(t, c.stderr.String(), "Reading records from stdin.")
	assert.Contains(t, c.stderr.String(), "Serialized 2 records, 3 columns")
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		args     []string
		stdin    string
		exitCode int
		stderr   string
	}{
		{
			name:     "missing schema",
			args:     []string{"convert"},
			exitCode: svcerrors.ExitCodeConfiguration,
			stderr:   `Error: Missing schema file, please specify the "--schema" flag.`,
		},
		{
			name:     "unknown flag",
			args:     []string{"convert", "--foo"},
			exitCode: svcerrors.ExitCodeConfiguration,
			stderr:   `Error: Unknown flag: --foo.`,
		},
		{
			name:     "invalid line terminator",
			args:     []string{"convert", "--schema", "/schema.yaml", "--line-terminator", "cr"},
			stdin:    testInput,
			exitCode: svcerrors.ExitCodeConfiguration,
			stderr:   `"lineTerminator" must be one of [lf crlf]`,
		},
		{
			name:     "missing schema file",
			args:     []string{"convert", "--schema", "/missing.yaml"},
			exitCode: svcerrors.ExitCodeConfiguration,
			stderr:   `Cannot read schema file "/missing.yaml"`,
		},
		{
			name:     "no records",
			args:     []string{"convert", "--schema", "/schema.yaml"},
			stdin:    "\n\n",
			exitCode: svcerrors.ExitCodeValidation,
			stderr:   `Error: Nothing to serialize, no records found.`,
		},
		{
			name:     "invalid JSON",
			args:     []string{"convert", "--schema", "/schema.yaml"},
			stdin:    "{\"type\": \"Person\", \"values\": {}}\n{foo\n",
			exitCode: svcerrors.ExitCodeValidation,
			stderr:   `Invalid JSON on line 2`,
		},
		{
			name:     "undeclared attribute",
			args:     []string{"convert", "--schema", "/schema.yaml"},
			stdin:    `{"type": "Person", "values": {"salary": 1}}`,
			exitCode: svcerrors.ExitCodeValidation,
			stderr:   `"salary" is not declared by the type "Person" or its ancestors`,
		},
		{
			name:     "missing input file",
			args:     []string{"convert", "--schema", "/schema.yaml", "--input", "/missing.jsonl"},
			exitCode: svcerrors.ExitCodeConfiguration,
			stderr:   `Cannot open input file "/missing.jsonl"`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestCLI(t)
			c.stdin.WriteString(tc.stdin)

			exitCode := c.run(tc.args...)
			assert.Equal(t, tc.exitCode, exitCode, c.stderr.String())
			assert.Contains(t, c.stderr.String(), tc.stderr)
			assert.Empty(t, c.stdout.String())
		})
	}
}

func TestRootCommand_Help(t *testing.T) {
	t.Parallel()

	c := newTestCLI(t)
	exitCode := c.run("--help")
	assert.Equal(t, svcerrors.ExitCodeOK, exitCode)
	assert.True(t, strings.HasPrefix(c.stdout.String(), "Serializes heterogeneous records to a single CSV table."))
	assert.Contains(t, c.stdout.String(), "convert")
}
