package fans

// State is the power state of an on/off fan.
type State int

const (
	StateOff State = 0
	StateOn  State = 1
)

// Command returns the ASCII byte that commands this state on a sysfs cooling device.
func (s State) Command() byte {
	if s == StateOn {
		return '1'
	}
	return '0'
}

func (s State) String() string {
	if s == StateOn {
		return "on"
	}
	return "off"
}

// Fan is an actuator that can be switched on and off.
// Setting the same state repeatedly must have no additional effect.
type Fan interface {
	GetId() string

	SetState(state State) error
}
