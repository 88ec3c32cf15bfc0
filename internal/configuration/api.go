package configuration

type ApiConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	Port    int  `json:"port" yaml:"port"`
}

type MqttConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Broker   string `json:"broker" yaml:"broker"`
	Topic    string `json:"topic" yaml:"topic"`
	ClientId string `json:"clientId" yaml:"clientId"`
}

type JournalConfig struct {
	Enabled    bool   `json:"enabled" yaml:"enabled"`
	DbPath     string `json:"dbPath" yaml:"dbPath"`
	MaxEntries int    `json:"maxEntries" yaml:"maxEntries"`
}
