package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/persistence"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the most recent fan actuations",
	Long:  `Prints the most recent entries of the actuation journal, newest first`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.DetectConfigFile()
		configuration.LoadConfig()

		dbPath := configuration.CurrentConfig.Journal.DbPath
		if _, err := os.Stat(dbPath); err != nil {
			return fmt.Errorf("no journal at %s, is journal.enabled set?", dbPath)
		}

		journal := persistence.NewJournal(dbPath, configuration.CurrentConfig.Journal.MaxEntries)
		if err := journal.Init(); err != nil {
			return err
		}

		actuations, err := journal.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(actuations) <= 0 {
			ui.Info("Journal is empty")
			return nil
		}

		var rows [][]string
		for _, actuation := range actuations {
			rows = append(rows, []string{
				actuation.Time.Local().Format(time.DateTime),
				fmt.Sprintf("%.1f", actuation.Mean),
				actuation.Decision,
			})
		}

		printTables([]table.Table{
			{
				Headers: []string{"Time", "°C", "Fan"},
				Rows:    rows,
			},
		})
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "l", 20, "Maximum number of entries to print")
	rootCmd.AddCommand(historyCmd)
}
