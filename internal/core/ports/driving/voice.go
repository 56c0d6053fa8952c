package driving

// VoiceService speaks short phrases without blocking the caller.
// Failures are logged and never returned.
type VoiceService interface {
	// Say queues text to be spoken in the background.
	Say(text string)

	// Enabled reports whether speech output is configured.
	Enabled() bool
}
