package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/markusressel/xu4fan/internal/util"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "/etc/xu4fan/xu4fan.yaml"

var force bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Writes a configuration file containing all default values",
	Long:  ``,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := defaultConfigPath
		if len(args) > 0 {
			path = args[0]
		}
		path, err := util.ExpandPath(path)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite it", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		if err := configuration.WriteConfigFile(configuration.DefaultConfiguration(), path); err != nil {
			return err
		}

		ui.Success("Configuration written to %s", path)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	Command.AddCommand(initCmd)
}
