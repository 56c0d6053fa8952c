package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// Ensure VoiceService implements the interface.
var _ driving.VoiceService = (*VoiceService)(nil)

// DefaultSpeakTimeout bounds a single utterance.
const DefaultSpeakTimeout = 60 * time.Second

// VoiceService speaks phrases in the background, one at a time.
// A nil speaker makes every call a no-op.
type VoiceService struct {
	speaker driven.Speaker
	timeout time.Duration

	mu sync.Mutex // serialises playback
	wg sync.WaitGroup
}

// NewVoiceService creates a voice service around speaker.
func NewVoiceService(speaker driven.Speaker) *VoiceService {
	return &VoiceService{speaker: speaker, timeout: DefaultSpeakTimeout}
}

// Enabled reports whether a speaker is configured.
func (s *VoiceService) Enabled() bool {
	return s.speaker != nil
}

// Say speaks text without blocking. Failures are logged.
func (s *VoiceService) Say(text string) {
	if s.speaker == nil || text == "" {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.mu.Lock()
		defer s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.speaker.Speak(ctx, text); err != nil {
			logger.Warn("Speech failed: %v", err)
		}
	}()
}

// Wait blocks until queued phrases have finished. Call it before exit so
// the last phrase is not cut off.
func (s *VoiceService) Wait() {
	s.wg.Wait()
}
