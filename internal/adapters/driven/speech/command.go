package speech

import (
	"context"
	"strings"

	"github.com/custodia-labs/emoticare/internal/core/domain"
	"github.com/custodia-labs/emoticare/internal/core/ports/driven"
)

// Ensure CommandSpeaker implements the interface.
var _ driven.Speaker = (*CommandSpeaker)(nil)

// CommandSpeaker speaks by running a local synthesiser with the text as
// its final argument.
type CommandSpeaker struct {
	name string
	args []string
	run  Runner
}

// NewCommandSpeaker parses a command line such as "espeak -s 150".
// A nil run uses ExecRunner.
func NewCommandSpeaker(command string, run Runner) (*CommandSpeaker, error) {
	name, args, err := splitCommand(command)
	if err != nil {
		return nil, err
	}
	if run == nil {
		run = ExecRunner
	}
	return &CommandSpeaker{name: name, args: args, run: run}, nil
}

// Speak runs the synthesiser and waits for it to finish.
func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ErrInvalidInput
	}
	args := append(append([]string{}, s.args...), text)
	return s.run(ctx, s.name, args...)
}
