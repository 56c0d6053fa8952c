// Package cli provides the cobra command tree for EmotiCare.
//
// Commands run against Services built by a Bootstrap function that the
// binary registers with SetBootstrap. Tests set the services directly.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/emoticare/internal/core/ports/driving"
	"github.com/custodia-labs/emoticare/internal/logger"
)

// version is set at build time.
var version = "dev"

// Options are the global flags passed to the bootstrap function.
type Options struct {
	// ConfigDir overrides ~/.emoticare.
	ConfigDir string

	// Verbose enables debug logging.
	Verbose bool
}

// Services are the core services commands run against.
type Services struct {
	Settings driving.SettingsService
	Wellness driving.WellnessService
	Voice    driving.VoiceService

	// Answer builds the answer pipeline on first use. Building ingests and
	// embeds the support document, so commands that never answer skip it.
	Answer func(ctx context.Context) (driving.AnswerService, error)

	// PromptChanges reports the names of edited prompt templates. Optional.
	PromptChanges func(ctx context.Context) (<-chan string, error)

	// Close releases resources and waits for queued speech. Optional.
	Close func()
}

// Bootstrap builds services after flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	svc       *Services
	opts      Options
)

// errNotConfigured is returned when a command runs without services.
var errNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "emoticare",
	Short: "A mood-support assistant for the terminal",
	Long: `EmotiCare answers wellbeing questions from a support document.

Pick how you feel, read a quote and a few relaxation tips, then ask
questions. Answers are one short line grounded in the document.

Run without a subcommand to open the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.emoticare)")
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases services afterwards.
// Interrupts cancel the command context so servers shut down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()

	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)
	if bootstrap == nil {
		return nil
	}
	s, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return err
	}
	svc = s
	return nil
}

func closeServices() {
	if svc != nil && svc.Close != nil {
		svc.Close()
	}
}

// getAnswerService builds the pipeline for commands that answer questions.
func getAnswerService(ctx context.Context) (driving.AnswerService, error) {
	if svc == nil || svc.Answer == nil {
		return nil, errNotConfigured
	}
	return svc.Answer(ctx)
}

func getWellnessService() (driving.WellnessService, error) {
	if svc == nil || svc.Wellness == nil {
		return nil, errNotConfigured
	}
	return svc.Wellness, nil
}

func getSettingsService() (driving.SettingsService, error) {
	if svc == nil || svc.Settings == nil {
		return nil, errNotConfigured
	}
	return svc.Settings, nil
}
