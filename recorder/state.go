// Package recorder is the voice note state machine. A Controller owns at most
// one capture session and its elapsed timer, and hands the finished audio to
// the transcription client.
package recorder

// State is the controller's position in the Idle → Recording → Uploading
// cycle.
type State int

const (
	Idle State = iota
	Recording
	Uploading
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Recording:
		return "Recording"
	case Uploading:
		return "Uploading"
	default:
		return "Unknown"
	}
}
