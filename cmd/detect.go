package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/markusressel/xu4fan/cmd/global"
	"github.com/markusressel/xu4fan/internal/thermal"
	"github.com/markusressel/xu4fan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all thermal zones, cooling devices and hwmon temperature inputs and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		zones, err := thermal.Zones(thermal.SysClassThermal)
		if err != nil {
			ui.Error("Unable to list thermal zones: %v", err)
		}
		coolingDevices, err := thermal.CoolingDevices(thermal.SysClassThermal)
		if err != nil {
			ui.Error("Unable to list cooling devices: %v", err)
		}
		hwmonSensors := thermal.HwmonSensors()

		var zoneRows [][]string
		for _, zone := range zones {
			valueText := "N/A"
			if zone.Value >= 0 {
				valueText = fmt.Sprintf("%.1f", float64(zone.Value)/1000)
			}
			zoneRows = append(zoneRows, []string{
				"", zone.Name, zone.Type, valueText, zone.InputPath,
			})
		}

		var coolingRows [][]string
		for _, device := range coolingDevices {
			coolingRows = append(coolingRows, []string{
				"", device.Name, device.Type, strconv.Itoa(device.CurState), strconv.Itoa(device.MaxState), device.OutputPath,
			})
		}

		var hwmonRows [][]string
		for _, sensor := range hwmonSensors {
			hwmonRows = append(hwmonRows, []string{
				"", sensor.Chip, sensor.Label, fmt.Sprintf("%.1f", sensor.Value), sensor.InputPath,
			})
		}

		tables := []table.Table{
			{
				Headers: []string{"Zones  ", "Name", "Type", "°C", "Path"},
				Rows:    zoneRows,
			},
			{
				Headers: []string{"Cooling", "Name", "Type", "State", "Max", "Path"},
				Rows:    coolingRows,
			},
			{
				Headers: []string{"Hwmon  ", "Chip", "Label", "°C", "Path"},
				Rows:    hwmonRows,
			},
		}

		printTables(tables)
	},
}

func printTables(tables []table.Table) {
	tableConfig := &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	}

	for idx, t := range tables {
		if t.Rows == nil {
			continue
		}
		var buf bytes.Buffer
		tableErr := t.WriteTable(&buf, tableConfig)
		if tableErr != nil {
			ui.Fatal("Error printing table: %v", tableErr)
		}
		tableString := buf.String()
		if idx < (len(tables) - 1) {
			ui.Printfln(tableString)
		} else {
			ui.Printf(tableString)
		}
	}
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
