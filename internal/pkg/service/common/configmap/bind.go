package configmap

import (
	"encoding"
	"os"
	"reflect"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/keboola/recordcsv/internal/pkg/utils/errors"
)

// BindConfig defines sources of the configuration values.
// Priority: 1. flag, 2. ENV, 3. config file, 4. the current value of the field.
type BindConfig struct {
	Flags *pflag.FlagSet
	// EnvPrefix is added to the ENV name, for example "RECORDCSV_".
	EnvPrefix string
	// LookupEnv is os.LookupEnv, if it is not set.
	LookupEnv func(key string) (string, bool)
	// ConfigFile is an optional path to a JSON or YAML file.
	ConfigFile string
	// Fs is used to read the ConfigFile, the OS filesystem is used, if it is not set.
	Fs afero.Fs
}

// FlagToEnv converts the flag name to the ENV name.
func (c BindConfig) FlagToEnv(flagName string) string {
	return c.EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// Bind sets fields of the target structure from flags, ENVs and the config file.
// The target must be a pointer to a structure.
func Bind(cfg BindConfig, target any) error {
	if reflect.ValueOf(target).Kind() != reflect.Pointer {
		return errors.Errorf(`target must be a pointer to a struct, found "%T"`, target)
	}

	fields, err := Fields(target)
	if err != nil {
		return err
	}

	lookupEnv := cfg.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	// Read the config file
	v := viper.New()
	if cfg.ConfigFile != "" {
		if cfg.Fs != nil {
			v.SetFs(cfg.Fs)
		}
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.PrefixErrorf(err, `cannot read config file "%s"`, cfg.ConfigFile)
		}
	}

	errs := errors.NewMultiError()
	for _, f := range fields {
		var text string
		var found bool

		if flag := flagByName(cfg.Flags, f.FlagName); flag != nil && flag.Changed {
			text, found = flag.Value.String(), true
		} else if value, ok := lookupEnv(cfg.FlagToEnv(f.FlagName)); ok {
			text, found = value, true
		} else if v.IsSet(f.Path) {
			text, err = cast.ToStringE(v.Get(f.Path))
			if err != nil {
				errs.AppendWithPrefixf(err, `invalid value of "%s" in the config file`, f.Path)
				continue
			}
			found = true
		}

		if !found {
			continue
		}

		if err := setFromText(f.Value, text); err != nil {
			errs.AppendWithPrefixf(err, `invalid value "%s" of "%s"`, text, f.Path)
		}
	}

	return errs.ErrorOrNil()
}

func flagByName(fs *pflag.FlagSet, name string) *pflag.Flag {
	if fs == nil {
		return nil
	}
	return fs.Lookup(name)
}

func setFromText(target reflect.Value, text string) error {
	if isTextType(target.Type()) {
		return target.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text))
	}

	switch target.Kind() {
	case reflect.String:
		target.SetString(text)
	case reflect.Bool:
		v, err := cast.ToBoolE(text)
		if err != nil {
			return err
		}
		target.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := cast.ToInt64E(text)
		if err != nil {
			return err
		}
		if target.OverflowInt(v) {
			return errors.Errorf("value %d overflows %s", v, target.Type().String())
		}
		target.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := cast.ToUint64E(text)
		if err != nil {
			return err
		}
		if target.OverflowUint(v) {
			return errors.Errorf("value %d overflows %s", v, target.Type().String())
		}
		target.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := cast.ToFloat64E(text)
		if err != nil {
			return err
		}
		target.SetFloat(v)
	default:
		return errors.Errorf(`unexpected type "%s"`, target.Type().String())
	}
	return nil
}
