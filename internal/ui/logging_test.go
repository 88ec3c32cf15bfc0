package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "It's currently %.1f°C here"
	Printfln(msg, 47.5)
	// Output:
	// It's currently 47.5°C here
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	msg := "Mean temperature: %.2f"
	Debug(msg, 51.25)
	// Output:
	// DEBUG: Mean temperature: 51.25
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Turning fan %s"
	Info(msg, "on")
	// Output:
	// INFO: Turning fan on
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "High temperature %.1f is not above low temperature %.1f"
	Warning(msg, 50.0, 60.0)
	// Output:
	// WARNING: High temperature 50.0 is not above low temperature 60.0
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Control cycle failed: %v"
	Error(msg, os.ErrClosed)
	// Output:
	// ERROR: Control cycle failed: file already closed
}
