package control_loop

// Thresholds of a hysteresis band in °C. High is expected to be greater than Low,
// which is not checked here.
type Thresholds struct {
	High float64 `json:"high"`
	Low  float64 `json:"low"`
}

// HysteresisControlLoop switches on above High, off below Low and holds
// anywhere inside the closed band [Low, High]. It keeps no state, every
// call is decided from the given measurement alone.
type HysteresisControlLoop struct {
	Thresholds Thresholds
}

func NewHysteresisControlLoop(thresholds Thresholds) *HysteresisControlLoop {
	return &HysteresisControlLoop{
		Thresholds: thresholds,
	}
}

func (l *HysteresisControlLoop) Loop(measured float64) Decision {
	if measured > l.Thresholds.High {
		return DecisionOn
	} else if measured < l.Thresholds.Low {
		return DecisionOff
	}
	return DecisionHold
}
