package fan

import (
	"github.com/markusressel/xu4fan/internal/fans"
	"github.com/spf13/cobra"
)

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the fan off",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setState(fans.StateOff)
	},
}

func init() {
	Command.AddCommand(offCmd)
}
