package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/emoticare/internal/adapters/driving/tui"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal interface for EmotiCare.

Pick how you feel to see the quote of the day and relaxation tips, then
ask a suggested question or type your own.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Ask
  Tab      - Switch between suggestions and input
  Ctrl+D   - Say goodbye
  Esc      - Back
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := cmd.Context()

	wellness, err := getWellnessService()
	if err != nil {
		return err
	}

	// Ingest and embed before the alt screen takes over the terminal.
	answer, err := getAnswerService(ctx)
	if err != nil {
		return fmt.Errorf("preparing answers: %w", err)
	}

	ports := tui.NewPorts(answer, wellness)
	ports.Voice = svc.Voice
	ports.Settings = svc.Settings
	if svc.PromptChanges != nil {
		changes, err := svc.PromptChanges(ctx)
		if err != nil {
			logger.Warn("prompt reload disabled: %v", err)
		} else {
			ports.PromptChanges = changes
		}
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(ctx).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
