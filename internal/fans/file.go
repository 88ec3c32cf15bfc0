package fans

import (
	"io"
	"os"
	"path/filepath"

	"github.com/markusressel/xu4fan/internal/errcode"
)

// FileFan writes single byte commands to a write-only sysfs handle,
// e.g. /sys/devices/virtual/thermal/cooling_device2/cur_state
type FileFan struct {
	ID   string
	Path string

	file *os.File
}

// OpenFileFan opens path write-only.
func OpenFileFan(path string) (*FileFan, error) {
	file, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, errcode.NewIo("open fan file", path, err)
	}

	return &FileFan{
		ID:   filepath.Base(filepath.Dir(path)),
		Path: path,
		file: file,
	}, nil
}

func (fan *FileFan) GetId() string {
	return fan.ID
}

func (fan *FileFan) SetState(state State) error {
	n, err := fan.file.Write([]byte{state.Command()})
	if err == nil && n != 1 {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errcode.NewIo("turn fan "+state.String(), fan.Path, err)
	}
	return nil
}

func (fan *FileFan) Close() error {
	return fan.file.Close()
}
