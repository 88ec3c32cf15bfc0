package configuration

import (
	"bytes"

	"github.com/markusressel/xu4fan/internal/util"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfiguration returns the configuration used when no config file exists.
func DefaultConfiguration() Configuration {
	v := viper.New()
	setDefaultValues(v)
	config, err := decode(v)
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return config
}

type configurationAlias Configuration

// MarshalYAML writes the interval in its human-readable form, e.g. "1s".
func (c Configuration) MarshalYAML() (interface{}, error) {
	return struct {
		configurationAlias `yaml:",inline"`
		Interval           string `yaml:"interval"`
	}{
		configurationAlias: configurationAlias(c),
		Interval:           c.Interval.String(),
	}, nil
}

// WriteConfigFile writes config as YAML to path, replacing any existing file atomically.
func WriteConfigFile(config Configuration, path string) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(config); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	return util.WriteFileAtomic(path, buf.Bytes())
}

// ReadConfigFile decodes a config file into a Configuration, applying defaults
// for anything the file does not set.
func ReadConfigFile(path string) (Configuration, error) {
	v := viper.New()
	setDefaultValues(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Configuration{}, err
	}
	return decode(v)
}
