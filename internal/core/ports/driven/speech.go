package driven

import "context"

// Speaker turns text into audible speech.
type Speaker interface {
	// Speak blocks until the text has been played or ctx is done.
	Speak(ctx context.Context, text string) error
}
