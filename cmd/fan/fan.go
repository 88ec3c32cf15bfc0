package fan

import (
	"io"

	"github.com/markusressel/xu4fan/internal"
	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/fans"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

// setState issues a single command to the configured fan.
func setState(state fans.State) error {
	configPath := configuration.DetectConfigFile()
	if len(configPath) > 0 {
		ui.Info("Using configuration file at: %s", configPath)
	}
	configuration.LoadConfig()
	err := configuration.Validate()
	if err != nil {
		ui.Fatal("%v", err)
	}

	fan, err := internal.OpenFan(configuration.CurrentConfig.Fan)
	if err != nil {
		return err
	}
	if c, ok := fan.(io.Closer); ok {
		defer c.Close()
	}

	if err := fan.SetState(state); err != nil {
		return err
	}
	ui.Success("Fan %s turned %s", fan.GetId(), state)
	return nil
}
