package sensors

// Sensor is a source of temperature readings.
type Sensor interface {
	GetId() string

	// GetValue performs a fresh read and returns the current temperature in °C
	GetValue() (float64, error)
}
