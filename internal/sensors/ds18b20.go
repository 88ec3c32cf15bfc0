package sensors

import (
	"github.com/markusressel/xu4fan/internal/errcode"
	"github.com/yryz/ds18b20"
)

// W1Sensor is a DS18B20 probe on the 1-wire bus, addressed by its device id.
type W1Sensor struct {
	ID string
}

func (sensor W1Sensor) GetId() string {
	return "w1-" + sensor.ID
}

func (sensor W1Sensor) GetValue() (float64, error) {
	value, err := ds18b20.Temperature(sensor.ID)
	if err != nil {
		return 0, errcode.NewIo("read ds18b20", sensor.ID, err)
	}
	return value, nil
}

// DetectW1Sensors returns one sensor for every DS18B20 probe currently on the bus.
func DetectW1Sensors() ([]Sensor, error) {
	ids, err := ds18b20.Sensors()
	if err != nil {
		return nil, errcode.NewIo("list ds18b20 sensors", "", err)
	}

	result := make([]Sensor, 0, len(ids))
	for _, id := range ids {
		result = append(result, W1Sensor{ID: id})
	}
	return result, nil
}
