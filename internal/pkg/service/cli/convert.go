package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/recordcsv/internal/pkg/ctxattr"
	"github.com/keboola/recordcsv/internal/pkg/encoding/compression"
	"github.com/keboola/recordcsv/internal/pkg/log"
	"github.com/keboola/recordcsv/internal/pkg/record"
	"github.com/keboola/recordcsv/internal/pkg/serializer"
	"github.com/keboola/recordcsv/internal/pkg/service/common/configmap"
	svcerrors "github.com/keboola/recordcsv/internal/pkg/service/common/errors"
	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const stdStream = "-"

const convertLong = `Converts JSON lines to CSV.

Each input line is one record:
  {"type": "<type name>", "values": {"<attribute>": <value>, ...}}

Record types are defined by the YAML schema:
  types:
    - name: Person
      attributes:
        - {name: name, type: string}
    - name: Employee
      parent: Person
      attributes:
        - {name: salary, type: float}
`

type convertCommand struct {
	root  *RootCommand
	flags ConvertFlags
}

func newConvertCommand(root *RootCommand) *cobra.Command {
	c := &convertCommand{root: root, flags: DefaultConvertFlags()}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert JSON lines to CSV.",
		Long:  convertLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bind(cmd); err != nil {
				return err
			}
			return c.run(cmd.Context(), cmd)
		},
	}

	configmap.MustGenerateFlags(cmd.Flags(), c.flags)
	return cmd
}

func (c *convertCommand) bind(cmd *cobra.Command) error {
	bindCfg := configmap.BindConfig{
		Flags:      cmd.Flags(),
		EnvPrefix:  ENVPrefix,
		LookupEnv:  c.root.lookupEnv,
		ConfigFile: c.root.flags.ConfigFile,
		Fs:         c.root.fs,
	}
	if err := configmap.Bind(bindCfg, &c.flags); err != nil {
		return svcerrors.NewConfigurationError(err)
	}
	if c.flags.Schema == "" {
		return svcerrors.NewConfigurationError(errors.New(`missing schema file, please specify the "--schema" flag`))
	}
	return nil
}

func (c *convertCommand) run(ctx context.Context, cmd *cobra.Command) error {
	logger := c.root.logger.WithComponent("convert")
	ctx = ctxattr.ContextWith(ctx, attribute.String("input", streamName(c.flags.Input)), attribute.String("output", streamName(c.flags.Output)))

	schema, err := record.LoadSchema(ctx, c.root.fs, c.flags.Schema)
	if err != nil {
		return svcerrors.NewConfigurationError(err)
	}

	introspector, err := record.NewSchemaIntrospector(schema)
	if err != nil {
		return svcerrors.NewConfigurationError(errors.PrefixErrorf(err, `invalid schema file "%s"`, c.flags.Schema))
	}

	records, err := c.readInput(ctx, cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}

	cfg := c.flags.Serializer
	logger.Debugf(ctx, `Delimiter "%s", line terminator "%s", charset "%s".`, log.Sanitize(cfg.Delimiter), cfg.LineTerminator, cfg.Charset)

	s, err := serializer.New(logger, cfg, serializer.WithIntrospector(introspector))
	if err != nil {
		return err
	}

	if isStdStream(c.flags.Output) {
		return s.Serialize(ctx, cmd.OutOrStdout(), records)
	}

	path := OutputPath(c.flags.Output, cfg.Compression.Type)
	if err := s.WriteFile(ctx, c.root.fs, path, records); err != nil {
		return err
	}

	logger.Infof(ctx, `Written %d records to "%s".`, len(records), path)
	return nil
}

func (c *convertCommand) readInput(ctx context.Context, stdin io.Reader, logger log.Logger) ([]any, error) {
	if isStdStream(c.flags.Input) {
		logger.Debug(ctx, "Reading records from stdin.")
		return ReadRecords(ctx, stdin)
	}

	logger.Debugf(ctx, `Reading records from "%s".`, c.flags.Input)
	file, err := c.root.fs.Open(c.flags.Input)
	if err != nil {
		return nil, svcerrors.NewConfigurationError(errors.PrefixErrorf(err, `cannot open input file "%s"`, c.flags.Input))
	}
	defer file.Close()

	return ReadRecords(ctx, file)
}

// OutputPath adds the compression extension, if it is missing.
func OutputPath(path string, compressionType compression.Type) string {
	withExt, err := compression.Filename(path, compressionType)
	if err != nil || strings.HasSuffix(path, strings.TrimPrefix(withExt, path)) {
		return path
	}
	return withExt
}

func streamName(path string) string {
	if isStdStream(path) {
		return stdStream
	}
	return path
}

func isStdStream(path string) bool {
	return path == "" || path == stdStream
}
