package speech

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure OpenAISpeaker implements the interface.
var _ driven.Speaker = (*OpenAISpeaker)(nil)

// Default OpenAI speech values.
const (
	DefaultOpenAIModel = "tts-1"
	DefaultOpenAIVoice = "alloy"
	DefaultTimeout     = 30 * time.Second
)

// OpenAIConfig holds configuration for the OpenAI speaker.
type OpenAIConfig struct {
	// APIKey is the OpenAI API key (required).
	APIKey string

	// BaseURL overrides the API base URL.
	BaseURL string

	// Model is the speech model (default: tts-1).
	Model string

	// Voice is the voice name (default: alloy).
	Voice string

	// Player is the command line that plays an MP3 file given as its last
	// argument.
	Player string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// OpenAISpeaker synthesises speech with OpenAI and plays it locally.
type OpenAISpeaker struct {
	client     openai.Client
	model      string
	voice      string
	playerName string
	playerArgs []string
	run        Runner
}

// NewOpenAISpeaker creates an OpenAI speaker. A nil run uses ExecRunner.
func NewOpenAISpeaker(cfg OpenAIConfig, run Runner) (*OpenAISpeaker, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai speech: API key is required")
	}
	playerName, playerArgs, err := splitCommand(cfg.Player)
	if err != nil {
		return nil, fmt.Errorf("openai speech: player: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultOpenAIModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultOpenAIVoice
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if run == nil {
		run = ExecRunner
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAISpeaker{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		voice:      cfg.Voice,
		playerName: playerName,
		playerArgs: playerArgs,
		run:        run,
	}, nil
}

// Speak downloads the audio to a temporary file, plays it and removes it.
func (s *OpenAISpeaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrInvalidInput
	}

	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Input:          text,
		Model:          openai.SpeechModel(s.model),
		Voice:          openai.AudioSpeechNewParamsVoice(s.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}
	defer resp.Body.Close()

	f, err := os.CreateTemp("", "emoticare-*.mp3")
	if err != nil {
		return fmt.Errorf("openai speech: temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("openai speech: reading audio: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("openai speech: %w", err)
	}

	args := append(append([]string{}, s.playerArgs...), f.Name())
	return s.run(ctx, s.playerName, args...)
}
