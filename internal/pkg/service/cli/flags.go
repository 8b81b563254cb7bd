package cli

import (
	"github.com/keboola/recordcsv/internal/pkg/serializer"
)

const ENVPrefix = "RECORDCSV_"

// GlobalFlags are common for all commands.
type GlobalFlags struct {
	Verbose    bool   `configKey:"verbose" configShorthand:"v" configUsage:"Print details."`
	LogFile    string `configKey:"log-file" configShorthand:"l" configUsage:"Path to a log file for details."`
	LogFormat  string `configKey:"log-format" configUsage:"Format of the log messages: console, json."`
	ConfigFile string `configKey:"config-file" configShorthand:"c" configUsage:"Path to a JSON or YAML configuration file."`
}

// ConvertFlags of the "convert" command.
type ConvertFlags struct {
	Schema     string            `configKey:"schema" configShorthand:"s" configUsage:"Path to the YAML schema of the record types."`
	Input      string            `configKey:"input" configShorthand:"i" configUsage:"Path to the JSON lines input, stdin if empty or \"-\"."`
	Output     string            `configKey:"output" configShorthand:"o" configUsage:"Path to the output file, stdout if empty or \"-\"."`
	Serializer serializer.Config `configKey:",squash"`
}

func DefaultGlobalFlags() GlobalFlags {
	return GlobalFlags{LogFormat: "console"}
}

func DefaultConvertFlags() ConvertFlags {
	return ConvertFlags{Serializer: serializer.NewConfig()}
}
