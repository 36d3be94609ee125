package capture

// EventKind tags the single terminal event a capture run produces.
type EventKind string

const (
	EventTranscript EventKind = "transcript"
	EventError      EventKind = "error"
	EventCancelled  EventKind = "cancelled"
)

// Event is what the capture device emits when listening ends: a final
// transcript, an error code, or a cancellation with no result.
type Event struct {
	Kind       EventKind `json:"kind"`
	Transcript string    `json:"transcript,omitempty"`
	ErrorCode  string    `json:"error_code,omitempty"`
}

// Device is the injected speech-capture capability. The dispatcher never
// talks to a concrete recognition engine; it only needs to know whether
// capture can start and when it has been asked to stop.
type Device interface {
	// Available reports whether speech capture can be offered at all.
	Available() bool

	// Start begins a capture run for the session. The terminal Event
	// arrives out of band (the web client posts it back).
	Start(sessionId string) error

	// Stop aborts an in-progress capture run, if any.
	Stop(sessionId string) error
}

// WebBridge is the production Device: the actual recognition runs in the
// user's browser, so Start/Stop are acknowledgements and availability is
// a deployment switch.
type WebBridge struct {
	enabled bool
}

func NewWebBridge(enabled bool) *WebBridge {
	return &WebBridge{enabled: enabled}
}

func (b *WebBridge) Available() bool {
	return b.enabled
}

func (b *WebBridge) Start(sessionId string) error {
	return nil
}

func (b *WebBridge) Stop(sessionId string) error {
	return nil
}
