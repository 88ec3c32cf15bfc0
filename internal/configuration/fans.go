package configuration

type FanConfig struct {
	File *FileFanConfig `json:"file,omitempty" yaml:"file,omitempty"`
	Gpio *GpioFanConfig `json:"gpio,omitempty" yaml:"gpio,omitempty"`
}

type FileFanConfig struct {
	Path string `json:"path" yaml:"path"`
}

type GpioFanConfig struct {
	Pin       int  `json:"pin" yaml:"pin"`
	ActiveLow bool `json:"activeLow" yaml:"activeLow"`
}
