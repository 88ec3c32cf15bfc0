package sensors

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/markusressel/xu4fan/internal/errcode"
)

const milliDegreesPerDegree = 1000.0

// ReadTemperature rewinds r and parses its whole content as a milli-degree
// Celsius integer, returning the value in °C.
func ReadTemperature(r io.ReadSeeker) (float64, error) {
	return readTemperature("", r)
}

func readTemperature(path string, r io.ReadSeeker) (float64, error) {
	const op = "read temperature"

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, errcode.NewIo(op, path, err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, errcode.NewIo(op, path, err)
	}
	if !utf8.Valid(data) {
		return 0, errcode.NewFormat(op, path, errors.New("content is not valid utf-8"))
	}

	// a single leading '+' is allowed
	text := strings.TrimPrefix(strings.TrimSpace(string(data)), "+")
	value, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, errcode.NewFormat(op, path, err)
	}

	return float64(value) / milliDegreesPerDegree, nil
}
