package speech

import (
	"fmt"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// NewSpeaker creates the speaker named by settings. It returns nil with no
// error when speech is disabled.
func NewSpeaker(settings domain.SpeechSettings) (driven.Speaker, error) {
	if !settings.Enabled || settings.Provider == domain.SpeechProviderNone {
		return nil, nil
	}

	var (
		speaker driven.Speaker
		err     error
	)
	switch settings.Provider {
	case domain.SpeechProviderCommand:
		speaker, err = NewCommandSpeaker(settings.Command, nil)
	case domain.SpeechProviderOpenAI:
		speaker, err = NewOpenAISpeaker(OpenAIConfig{
			APIKey: settings.APIKey,
			Voice:  settings.Voice,
			Player: settings.Player,
		}, nil)
	default:
		return nil, fmt.Errorf("%w: speech provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if err != nil {
		return nil, err
	}
	return speaker, nil
}
