package errcode

import "errors"

// Kind classifies a failure of the sensor/actuator layer.
// It implements error, so a Kind can be used directly as an errors.Is target.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	// Io is an open, read or write failure on a sensor or actuator handle.
	Io Kind = "io error"
	// Format means sensor content is not a non-negative integer in milli-degrees.
	Format Kind = "format error"
	// EmptyInput means an aggregate was requested over zero sensors.
	EmptyInput Kind = "empty input"
)

// E carries the kind of a failure together with the operation and handle it happened on.
type E struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *E) Error() string {
	msg := string(e.Kind)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *E) Unwrap() error { return e.Err }

func (e *E) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func NewIo(op string, path string, err error) error {
	return &E{Kind: Io, Op: op, Path: path, Err: err}
}

func NewFormat(op string, path string, err error) error {
	return &E{Kind: Format, Op: op, Path: path, Err: err}
}

func NewEmptyInput(op string) error {
	return &E{Kind: EmptyInput, Op: op}
}

// KindOf extracts the Kind of err, or an empty Kind if err is nil or unclassified.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *E
	if errors.As(err, &e) {
		return e.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	return ""
}
