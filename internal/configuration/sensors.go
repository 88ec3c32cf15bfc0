package configuration

type SensorsConfig struct {
	// Glob selects sensor files by pattern, matches are used in lexical order
	Glob string `json:"glob" yaml:"glob"`
	// Paths are appended after the glob matches
	Paths []string `json:"paths" yaml:"paths"`
	// Ds18b20 adds every DS18B20 probe found on the 1-wire bus
	Ds18b20 bool `json:"ds18b20" yaml:"ds18b20"`
}
