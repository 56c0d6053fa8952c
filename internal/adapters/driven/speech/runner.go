// Package speech provides driven.Speaker adapters.
//
// CommandSpeaker hands text to a local synthesiser such as espeak or say.
// OpenAISpeaker fetches an MP3 from the OpenAI speech endpoint and plays it
// with an external player.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external program and waits for it to exit.
type Runner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the program with os/exec, including its stderr in errors.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// splitCommand turns a configured command line into program and arguments.
func splitCommand(line string) (string, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("speech: empty command")
	}
	return fields[0], fields[1:], nil
}
