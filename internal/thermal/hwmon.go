package thermal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/md14454/gosensors"
)

// HwmonSensor is a temperature input reported by lm-sensors.
type HwmonSensor struct {
	Chip      string
	Label     string
	InputPath string
	// Value in °C
	Value float64
}

// HwmonSensors returns every temperature input of every chip lm-sensors detects.
// The input paths can be used as sensor paths.
func HwmonSensors() []HwmonSensor {
	gosensors.Init()
	defer gosensors.Cleanup()

	var result []HwmonSensor
	for _, chip := range gosensors.GetDetectedChips() {
		for _, feature := range chip.GetFeatures() {
			if feature.Type != gosensors.FeatureTypeTemp {
				continue
			}
			for _, subFeature := range feature.GetSubFeatures() {
				if subFeature.Type != gosensors.SubFeatureTypeTempInput {
					continue
				}
				result = append(result, HwmonSensor{
					Chip:      chip.Prefix,
					Label:     getLabel(chip.Path, subFeature.Name),
					InputPath: fmt.Sprintf("%s/%s", chip.Path, subFeature.Name),
					Value:     subFeature.GetValue(),
				})
			}
		}
	}
	return result
}

// getLabel reads the label of an input of a hwmon device, e.g. temp1_label for temp1_input
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(devicePath+"/"+input, "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := strings.TrimSpace(string(content))
	if len(label) <= 0 {
		_, label = filepath.Split(devicePath)
	}
	return label
}
