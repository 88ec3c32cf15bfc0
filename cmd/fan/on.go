package fan

import (
	"github.com/markusressel/xu4fan/internal/fans"
	"github.com/spf13/cobra"
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the fan on",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setState(fans.StateOn)
	},
}

func init() {
	Command.AddCommand(onCmd)
}
