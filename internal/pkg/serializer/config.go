package serializer

import (
	"github.com/c2h5oh/datasize"

	"github.com/keboola/recordcsv/internal/pkg/encoding/charset"
	"github.com/keboola/recordcsv/internal/pkg/encoding/compression"
)

const (
	StrategyCSV = Strategy("csv")
)

// Strategy selects the output format.
type Strategy string

// Config of the Serializer.
type Config struct {
	Strategy       Strategy           `json:"strategy" configKey:"strategy" configUsage:"Serialization strategy." validate:"required,oneof=csv"`
	Charset        string             `json:"charset" configKey:"charset" configUsage:"Charset of the output, for example utf8, ISO-8859-2, windows-1250. Empty means utf8."`
	LineTerminator string             `json:"lineTerminator" configKey:"lineTerminator" configUsage:"Line terminator: lf, crlf." validate:"required,oneof=lf crlf"`
	Delimiter      string             `json:"delimiter" configKey:"delimiter" configUsage:"Delimiter of the values, a single character." validate:"required"`
	LogLevel       string             `json:"logLevel" configKey:"logLevel" configUsage:"Level of the serialization progress messages: debug, info, warn, error." validate:"required,oneof=debug info warn error"`
	BufferSize     datasize.ByteSize  `json:"bufferSize" configKey:"bufferSize" configUsage:"Size of the output buffer, 0 disables buffering." validate:"max=104857600"` // 100MB
	Compression    compression.Config `json:"compression" configKey:"compression"`
}

func NewConfig() Config {
	return Config{
		Strategy:       StrategyCSV,
		Charset:        charset.Default,
		LineTerminator: "lf",
		Delimiter:      ",",
		LogLevel:       "debug",
		BufferSize:     64 * datasize.KB,
		Compression:    compression.NewConfig(),
	}
}
