package sensor

import (
	"fmt"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	samples        int
	sampleInterval time.Duration
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Plot the mean temperature over time",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateGraphFlags(samples, sampleInterval); err != nil {
			return err
		}

		pterm.DisableOutput()

		sensorController, err := openSensors()
		if err != nil {
			return err
		}
		defer sensorController.Close()

		values := make([]float64, 0, samples)
		for i := 0; i < samples; i++ {
			if i > 0 {
				time.Sleep(sampleInterval)
			}
			mean, err := sensorController.GetMeanCpuTemp()
			if err != nil {
				return err
			}
			values = append(values, mean)
		}

		caption := fmt.Sprintf("Mean temperature (°C), %d samples every %s", samples, sampleInterval)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		fmt.Println(graph)
		return nil
	},
}

func validateGraphFlags(samples int, interval time.Duration) error {
	if samples <= 0 {
		return fmt.Errorf("samples must be > 0, was: %d", samples)
	}
	if interval < 0 {
		return fmt.Errorf("interval must be >= 0, was: %s", interval)
	}
	return nil
}

func init() {
	graphCmd.Flags().IntVarP(&samples, "samples", "n", 30, "Number of samples to take")
	graphCmd.Flags().DurationVarP(&sampleInterval, "interval", "t", 1*time.Second, "Delay between two samples")
	Command.AddCommand(graphCmd)
}
