// Package console talks to a Linux virtual console device: it checks that a
// device really is a virtual console and can switch it out of UTF-8 mode.
package console

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/multierr"
)

var (
	// ErrNotVirtualConsole is returned when the device does not answer virtual console queries.
	ErrNotVirtualConsole = errors.New("not a virtual console")
	// ErrUnsupported is returned on platforms without virtual consoles.
	ErrUnsupported = errors.New("virtual consoles are not supported on this platform")
)

// DefaultDevice is the console the kernel routes keymap and font requests to.
const DefaultDevice = "/dev/tty0"

// DefaultUTF8TogglePath holds the kernel's default UTF-8 mode for new consoles.
const DefaultUTF8TogglePath = "/sys/module/vt/parameters/default_utf8"

// leaveUTF8 is the escape sequence selecting the default (ISO 8859-1) character set.
const leaveUTF8 = "\033%@"

// Console is an open virtual console device.
type Console struct {
	path string
	file *os.File
}

// Open opens path read-write without validating it.
func Open(path string) (*Console, error) {
	f, err := openDevice(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Console{path: path, file: f}, nil
}

// Path returns the device path the console was opened from.
func (c *Console) Path() string {
	return c.path
}

// Validate returns ErrNotVirtualConsole unless the device is a virtual console.
func (c *Console) Validate() error {
	if !c.IsVirtualConsole() {
		return fmt.Errorf("device %s: %w", c.path, ErrNotVirtualConsole)
	}
	return nil
}

// IsVirtualConsole reports whether the device answers the foreground console query.
func (c *Console) IsVirtualConsole() bool {
	return isVirtualConsole(c.file)
}

// DisableUTF8 switches the keyboard to translated (non-Unicode) mode, sends
// the escape sequence leaving UTF-8 output mode and persists the choice in
// togglePath. All three steps are attempted; their errors are combined.
func (c *Console) DisableUTF8(togglePath string) error {
	var err error

	if kerr := setKeyboardXlate(c.file); kerr != nil {
		err = multierr.Append(err, fmt.Errorf("set keyboard mode: %w", kerr))
	}

	if _, werr := c.file.WriteString(leaveUTF8); werr != nil {
		err = multierr.Append(err, fmt.Errorf("write charset sequence: %w", werr))
	}

	if togglePath != "" {
		if terr := writeOneLine(togglePath, "0"); terr != nil {
			err = multierr.Append(err, fmt.Errorf("write %s: %w", togglePath, terr))
		}
	}

	return err
}

// Close releases the device.
func (c *Console) Close() error {
	if c == nil || c.file == nil {
		return nil
	}
	return c.file.Close()
}

func writeOneLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	_, err = f.WriteString(line + "\n")
	return multierr.Append(err, f.Close())
}
