//go:build linux

package audiosrc

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

// CaptureDevice names a soundcard capture device node discovered via
// udev, for the CLI's -list-devices flag.
type CaptureDevice struct {
	Node string
	Name string
}

// ListCaptureDevices enumerates ALSA sound capture device nodes on Linux
// via udev, so the daemon can report real hardware rather than asking the
// user to guess a PortAudio index.
func ListCaptureDevices() ([]CaptureDevice, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("sound"); err != nil {
		return nil, fmt.Errorf("audiosrc: match sound subsystem: %w", err)
	}

	devices, err := enum.Devices()
	if err != nil {
		return nil, fmt.Errorf("audiosrc: enumerate sound devices: %w", err)
	}

	var out []CaptureDevice
	for _, d := range devices {
		node := d.Devnode()
		if node == "" {
			continue
		}
		name := d.PropertyValue("ID_MODEL")
		if name == "" {
			name = d.Sysname()
		}
		out = append(out, CaptureDevice{Node: node, Name: name})
	}
	return out, nil
}
