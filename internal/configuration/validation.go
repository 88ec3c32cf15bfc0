package configuration

import (
	"errors"
	"fmt"

	"github.com/markusressel/xu4fan/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if config.HighTemp <= config.LowTemp {
		// not fatal, the controller works with any pair of thresholds
		ui.Warning("highTemp (%.1f) should be greater than lowTemp (%.1f), the fan will not use a hysteresis band", config.HighTemp, config.LowTemp)
	}

	if config.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, was: %s", config.Interval)
	}

	if config.TempRollingWindowSize <= 0 {
		return fmt.Errorf("tempRollingWindowSize must be > 0, was: %d", config.TempRollingWindowSize)
	}

	if err := validateFan(config); err != nil {
		return err
	}
	if err := validateSensors(config); err != nil {
		return err
	}
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
	}
	if config.Api.Enabled {
		if err := validatePort("api", config.Api.Port); err != nil {
			return err
		}
	}
	if config.Mqtt.Enabled {
		if len(config.Mqtt.Broker) <= 0 {
			return errors.New("mqtt: broker is missing")
		}
		if len(config.Mqtt.Topic) <= 0 {
			return errors.New("mqtt: topic is missing")
		}
	}
	if config.Journal.Enabled {
		if len(config.Journal.DbPath) <= 0 {
			return errors.New("journal: dbPath is missing")
		}
		if config.Journal.MaxEntries <= 0 {
			return fmt.Errorf("journal: maxEntries must be > 0, was: %d", config.Journal.MaxEntries)
		}
	}

	return nil
}

func validateFan(config *Configuration) error {
	subConfigs := 0
	if config.Fan.File != nil {
		subConfigs++
		if len(config.Fan.File.Path) <= 0 {
			return errors.New("fan: file path is missing")
		}
	}
	if config.Fan.Gpio != nil {
		subConfigs++
		if config.Fan.Gpio.Pin < 0 {
			return fmt.Errorf("fan: invalid gpio pin %d, must be >= 0", config.Fan.Gpio.Pin)
		}
	}
	if subConfigs > 1 {
		return errors.New("fan: only one fan type can be used, use one of: file | gpio")
	}
	if subConfigs <= 0 {
		return errors.New("fan: sub-configuration for fan is missing, use one of: file | gpio")
	}
	return nil
}

func validateSensors(config *Configuration) error {
	sensors := config.Sensors
	if len(sensors.Glob) <= 0 && len(sensors.Paths) <= 0 && !sensors.Ds18b20 {
		return errors.New("sensors: no sensor source configured, use at least one of: glob | paths | ds18b20")
	}

	var seen []string
	for _, path := range sensors.Paths {
		if len(path) <= 0 {
			return errors.New("sensors: empty sensor path")
		}
		if slices.Contains(seen, path) {
			ui.Warning("Duplicate sensor path: %s", path)
		}
		seen = append(seen, path)
	}
	return nil
}

func validatePort(name string, port int) error {
	if port <= 0 || port >= 65535 {
		return fmt.Errorf("%s: invalid port %d", name, port)
	}
	return nil
}
