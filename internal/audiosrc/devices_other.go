//go:build !linux

package audiosrc

// CaptureDevice names a soundcard capture device node.
type CaptureDevice struct {
	Node string
	Name string
}

// ListCaptureDevices is only implemented on Linux (via udev); elsewhere
// callers should use PortAudio's own device enumeration instead.
func ListCaptureDevices() ([]CaptureDevice, error) {
	return nil, nil
}
