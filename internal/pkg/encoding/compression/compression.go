// Package compression provides optional compression of the serialized output.
package compression

import (
	"io"
	"runtime"

	"github.com/c2h5oh/datasize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

const (
	TypeNone = Type("none")
	TypeGZIP = Type("gzip")
	TypeZSTD = Type("zstd")
)

const (
	GZIPImplStandard = GZIPImplementation("standard")
	GZIPImplParallel = GZIPImplementation("parallel")
)

const (
	DefaultGZIPLevel     = gzip.BestSpeed // 1-9
	DefaultGZIPBlockSize = 256 * datasize.KB
	DefaultZSTDLevel     = zstd.SpeedFastest // 1-4
)

type Type string

type GZIPImplementation string

// Config of the output compression.
type Config struct {
	Type            Type               `json:"type" configKey:"type" configUsage:"Output compression: none, gzip, zstd." validate:"required,oneof=none gzip zstd"`
	GZIPLevel       int                `json:"gzipLevel" configKey:"gzipLevel" configUsage:"GZIP compression level 1-9." validate:"min=1,max=9"`
	GZIPImpl        GZIPImplementation `json:"gzipImpl" configKey:"gzipImpl" configUsage:"GZIP implementation: standard, parallel." validate:"required,oneof=standard parallel"`
	GZIPBlockSize   datasize.ByteSize  `json:"gzipBlockSize" configKey:"gzipBlockSize" configUsage:"Block size of the parallel GZIP implementation." validate:"min=16384,max=104857600"` // 16kB-100MB
	GZIPConcurrency int                `json:"gzipConcurrency" configKey:"gzipConcurrency" configUsage:"Number of blocks compressed in parallel, 0 means the number of CPUs." validate:"min=0,max=256"`
	ZSTDLevel       int                `json:"zstdLevel" configKey:"zstdLevel" configUsage:"ZSTD compression level 1-4." validate:"min=1,max=4"`
}

func NewConfig() Config {
	return Config{
		Type:          TypeNone,
		GZIPLevel:     DefaultGZIPLevel,
		GZIPImpl:      GZIPImplStandard,
		GZIPBlockSize: DefaultGZIPBlockSize,
		ZSTDLevel:     int(DefaultZSTDLevel),
	}
}

func (t Type) String() string {
	return string(t)
}

// NewWriter wraps the writer by the configured compression.
// The returned writer must be closed to flush the compressed data, the underlying writer is not closed.
func NewWriter(w io.Writer, cfg Config) (io.WriteCloser, error) {
	switch cfg.Type {
	case TypeNone, "":
		return nopCloser{Writer: w}, nil
	case TypeGZIP:
		return newGZIPWriter(w, cfg)
	case TypeZSTD:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevel(cfg.ZSTDLevel)))
		if err != nil {
			return nil, errors.PrefixError(err, "cannot create zstd writer")
		}
		return enc, nil
	default:
		return nil, errors.Errorf(`unexpected compression type "%s"`, cfg.Type)
	}
}

// Filename adds the extension of the compression type to the file name.
func Filename(name string, t Type) (string, error) {
	switch t {
	case TypeNone, "":
		return name, nil
	case TypeGZIP:
		return name + ".gz", nil
	case TypeZSTD:
		return name + ".zstd", nil
	default:
		return "", errors.Errorf(`unexpected compression type "%s"`, t)
	}
}

func newGZIPWriter(w io.Writer, cfg Config) (io.WriteCloser, error) {
	switch cfg.GZIPImpl {
	case GZIPImplParallel:
		enc, err := pgzip.NewWriterLevel(w, cfg.GZIPLevel)
		if err != nil {
			return nil, errors.PrefixError(err, "cannot create parallel gzip writer")
		}
		blocks := cfg.GZIPConcurrency
		if blocks <= 0 {
			blocks = runtime.GOMAXPROCS(0)
		}
		if err := enc.SetConcurrency(int(cfg.GZIPBlockSize.Bytes()), blocks); err != nil {
			return nil, errors.PrefixError(err, "cannot set parallel gzip concurrency")
		}
		return enc, nil
	default:
		enc, err := gzip.NewWriterLevel(w, cfg.GZIPLevel)
		if err != nil {
			return nil, errors.PrefixError(err, "cannot create gzip writer")
		}
		return enc, nil
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
