// Package clipboard writes text to the system clipboard of the machine the
// tracker runs on.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard utility is usable.
var ErrUnavailable = errors.New("clipboard unavailable")

// Writer puts text on a clipboard.
type Writer interface {
	Available() bool
	WriteAll(text string) error
}

// System is the OS clipboard (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type System struct{}

func (System) Available() bool { return !clipboard.Unsupported }

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Memory is an in-process clipboard for tests and headless hosts.
type Memory struct {
	Text        string
	Unavailable bool
}

func (m *Memory) Available() bool { return !m.Unavailable }

func (m *Memory) WriteAll(text string) error {
	if m.Unavailable {
		return ErrUnavailable
	}
	m.Text = text
	return nil
}
