package control_loop

// Decision is the outcome of one control loop step.
type Decision int

const (
	// DecisionHold leaves the actuator untouched.
	DecisionHold Decision = iota
	DecisionOn
	DecisionOff
)

func (d Decision) String() string {
	switch d {
	case DecisionOn:
		return "on"
	case DecisionOff:
		return "off"
	default:
		return "hold"
	}
}

type ControlLoop interface {
	// Loop decides what to do with the actuator for the given measured temperature
	Loop(measured float64) Decision
}
