package sensors

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/markusressel/xu4fan/internal/errcode"
)

// FileSensor keeps a sysfs temperature file open for its whole lifetime
// and rewinds it on every read.
type FileSensor struct {
	ID   string
	Path string

	file *os.File
}

// OpenFileSensor opens path read-only.
func OpenFileSensor(path string) (*FileSensor, error) {
	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errcode.NewIo("open temperature file", path, err)
	}

	return &FileSensor{
		ID:   idFromPath(path),
		Path: path,
		file: file,
	}, nil
}

func (sensor *FileSensor) GetId() string {
	return sensor.ID
}

func (sensor *FileSensor) GetValue() (float64, error) {
	return readTemperature(sensor.Path, sensor.file)
}

func (sensor *FileSensor) Close() error {
	return sensor.file.Close()
}

// idFromPath derives a url-safe id from a sensor path, e.g.
// ".../thermal_zone0/temp" -> "thermal_zone0" and ".../hwmon3/temp1_input" -> "hwmon3-temp1"
func idFromPath(path string) string {
	dir, file := filepath.Split(filepath.Clean(path))
	parent := filepath.Base(dir)
	if parent == "." || parent == string(filepath.Separator) {
		return file
	}
	if file == "temp" {
		return parent
	}
	return parent + "-" + strings.TrimSuffix(file, "_input")
}
