package cmd

import (
	"fmt"
	"os"

	"github.com/markusressel/xu4fan/cmd/config"
	"github.com/markusressel/xu4fan/cmd/fan"
	"github.com/markusressel/xu4fan/cmd/global"
	"github.com/markusressel/xu4fan/cmd/sensor"
	"github.com/markusressel/xu4fan/internal"
	"github.com/markusressel/xu4fan/internal/configuration"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xu4fan",
	Short: "A daemon to switch the fan of an ODROID XU4 on and off.",
	Long: `xu4fan is a simple daemon that turns the fan of a single board
computer on when it gets hot and off again once it has cooled down.`,
	// this is the default command to run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()
		printHeader()

		configPath := configuration.DetectConfigFile()
		if len(configPath) > 0 {
			ui.Info("Using configuration file at: %s", configPath)
		}
		configuration.LoadConfig()
		err := configuration.Validate()
		if err != nil {
			ui.ErrorAndNotify("Config Validation Error", "%v", err)
			os.Exit(1)
		}

		internal.RunDaemon()
		os.Exit(internal.ExitCode())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&global.CfgFile, "config", "c", "", "config file (default is $HOME/xu4fan.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&global.NoColor, "no-color", "", false, "Disable all terminal output coloration")
	rootCmd.PersistentFlags().BoolVarP(&global.NoStyle, "no-style", "", false, "Disable all terminal output styling")
	rootCmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "More verbose output")

	rootCmd.PersistentFlags().Float64("high-temp", configuration.DefaultHighTemp, "Temperature in °C above which the fan is turned on")
	rootCmd.PersistentFlags().Float64("low-temp", configuration.DefaultLowTemp, "Temperature in °C below which the fan is turned off")
	_ = viper.BindPFlag("highTemp", rootCmd.PersistentFlags().Lookup("high-temp"))
	_ = viper.BindPFlag("lowTemp", rootCmd.PersistentFlags().Lookup("low-temp"))

	rootCmd.AddCommand(config.Command)

	rootCmd.AddCommand(fan.Command)
	rootCmd.AddCommand(sensor.Command)
}

func setupUi() {
	ui.SetDebugEnabled(global.Verbose)

	if global.NoColor {
		pterm.DisableColor()
	}
	if global.NoStyle {
		pterm.DisableStyling()
	}
}

// Print a large text with the LetterStyle from the standard theme.
func printHeader() {
	err := pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("xu4", pterm.NewStyle(pterm.FgLightBlue)),
		pterm.NewLettersFromStringWithStyle("fan", pterm.NewStyle(pterm.FgWhite)),
	).Render()
	if err != nil {
		fmt.Println("xu4fan")
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.OnInitialize(func() {
		configuration.InitConfig(global.CfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
