package sensor

import (
	"fmt"

	"github.com/markusressel/xu4fan/internal"
	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/control_loop"
	"github.com/markusressel/xu4fan/internal/controller"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the value of every configured sensor and their mean",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensorController, err := openSensors()
		if err != nil {
			return err
		}
		defer sensorController.Close()

		for _, sensor := range sensorController.GetSensors() {
			value, err := sensor.GetValue()
			if err != nil {
				return err
			}
			fmt.Printf("%s: %.1f\n", sensor.GetId(), value)
		}

		mean, err := sensorController.GetMeanCpuTemp()
		if err != nil {
			return err
		}
		fmt.Printf("mean: %.1f\n", mean)
		return nil
	},
}

// openSensors returns a controller without a fan, it can only be used for reading.
func openSensors() (*controller.FanController, error) {
	configuration.DetectConfigFile()
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		return nil, err
	}

	sensorList, err := internal.OpenSensors(configuration.CurrentConfig.Sensors)
	if err != nil {
		return nil, err
	}

	thresholds := control_loop.Thresholds{
		High: configuration.CurrentConfig.HighTemp,
		Low:  configuration.CurrentConfig.LowTemp,
	}
	return controller.NewFanController(thresholds, nil, sensorList, configuration.CurrentConfig.Interval), nil
}
