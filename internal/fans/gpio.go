package fans

import (
	"fmt"

	"github.com/markusressel/xu4fan/internal/errcode"
	"github.com/stianeikeland/go-rpio"
)

// GpioFan switches a fan through a transistor on a Raspberry Pi GPIO pin.
type GpioFan struct {
	Pin       int
	ActiveLow bool

	pin rpio.Pin
}

// OpenGpioFan maps the GPIO memory and configures pin as an output.
func OpenGpioFan(pin int, activeLow bool) (*GpioFan, error) {
	if err := rpio.Open(); err != nil {
		return nil, errcode.NewIo("open gpio", fmt.Sprintf("pin %d", pin), err)
	}

	p := rpio.Pin(pin)
	p.Output()

	return &GpioFan{
		Pin:       pin,
		ActiveLow: activeLow,
		pin:       p,
	}, nil
}

func (fan *GpioFan) GetId() string {
	return fmt.Sprintf("gpio%d", fan.Pin)
}

func (fan *GpioFan) SetState(state State) error {
	fan.pin.Write(gpioLevel(state, fan.ActiveLow))
	return nil
}

func (fan *GpioFan) Close() error {
	return rpio.Close()
}

func gpioLevel(state State, activeLow bool) rpio.State {
	on := state == StateOn
	if activeLow {
		on = !on
	}
	if on {
		return rpio.High
	}
	return rpio.Low
}
