package configuration

import (
	"errors"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultHighTemp   = 60.0
	DefaultLowTemp    = 50.0
	DefaultFanPath    = "/sys/devices/virtual/thermal/cooling_device2/cur_state"
	DefaultSensorGlob = "/sys/devices/virtual/thermal/thermal_zone*/temp"
)

type Configuration struct {
	HighTemp float64       `json:"highTemp" yaml:"highTemp"`
	LowTemp  float64       `json:"lowTemp" yaml:"lowTemp"`
	Interval time.Duration `json:"interval" yaml:"-"`

	TempRollingWindowSize int `json:"tempRollingWindowSize" yaml:"tempRollingWindowSize"`

	Fan     FanConfig     `json:"fan" yaml:"fan"`
	Sensors SensorsConfig `json:"sensors" yaml:"sensors"`

	Statistics StatisticsConfig `json:"statistics" yaml:"statistics"`
	Api        ApiConfig        `json:"api" yaml:"api"`
	Mqtt       MqttConfig       `json:"mqtt" yaml:"mqtt"`
	Journal    JournalConfig    `json:"journal" yaml:"journal"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	// a missing .env file is fine
	_ = godotenv.Load()

	viper.SetConfigName("xu4fan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Fatal("Couldn't detect home directory: %v", err)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/xu4fan/")
	}

	viper.SetEnvPrefix("XU4FAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues(viper.GetViper())
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("highTemp", DefaultHighTemp)
	v.SetDefault("lowTemp", DefaultLowTemp)
	v.SetDefault("interval", 1*time.Second)
	v.SetDefault("tempRollingWindowSize", 10)

	v.SetDefault("sensors.glob", DefaultSensorGlob)
	v.SetDefault("sensors.paths", []string{})
	v.SetDefault("sensors.ds18b20", false)

	v.SetDefault("statistics.enabled", false)
	v.SetDefault("statistics.port", 9000)

	v.SetDefault("api.enabled", false)
	v.SetDefault("api.host", "localhost")
	v.SetDefault("api.port", 8080)

	v.SetDefault("mqtt.enabled", false)
	v.SetDefault("mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("mqtt.topic", "xu4fan")
	v.SetDefault("mqtt.clientId", "")

	v.SetDefault("journal.enabled", false)
	v.SetDefault("journal.dbPath", "/var/lib/xu4fan/journal.db")
	v.SetDefault("journal.maxEntries", 1000)
}

// DetectConfigFile reads the config file, if there is one, and returns its path.
// Running without a config file is supported, all values have defaults.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			ui.Debug("No config file found, using defaults")
			return ""
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	config, err := decode(viper.GetViper())
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
	CurrentConfig = config
}

func decode(v *viper.Viper) (Configuration, error) {
	var config Configuration
	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return config, err
	}

	if config.Fan.File == nil && config.Fan.Gpio == nil {
		config.Fan.File = &FileFanConfig{Path: DefaultFanPath}
	}

	return config, nil
}

// WatchThresholds calls onChange whenever the config file changes and still
// decodes and validates. Only the thresholds can change at runtime, other
// changes require a restart.
func WatchThresholds(onChange func(highTemp float64, lowTemp float64)) {
	watchThresholds(viper.GetViper(), onChange)
}

func watchThresholds(v *viper.Viper, onChange func(highTemp float64, lowTemp float64)) {
	if v.ConfigFileUsed() == "" {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		config, err := decode(v)
		if err == nil {
			err = validateConfig(&config)
		}
		if err != nil {
			ui.Warning("Ignoring changed config file %s: %v", e.Name, err)
			return
		}
		onChange(config.HighTemp, config.LowTemp)
	})
	v.WatchConfig()
}
