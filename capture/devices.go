package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type InputDevice struct {
	Name       string
	HostAPI    string
	Channels   int
	SampleRate float64
	Default    bool
}

// ListInputDevices returns every device that can record.
func ListInputDevices() ([]InputDevice, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	var defaultName string
	if def, err := portaudio.DefaultInputDevice(); err == nil {
		defaultName = def.Name
	}

	var inputs []InputDevice
	for _, dev := range devices {
		if dev.MaxInputChannels < 1 {
			continue
		}
		hostAPI := ""
		if dev.HostApi != nil {
			hostAPI = dev.HostApi.Name
		}
		inputs = append(inputs, InputDevice{
			Name:       dev.Name,
			HostAPI:    hostAPI,
			Channels:   dev.MaxInputChannels,
			SampleRate: dev.DefaultSampleRate,
			Default:    dev.Name == defaultName,
		})
	}
	return inputs, nil
}
