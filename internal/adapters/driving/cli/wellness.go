package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

var quoteDate string

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List supported moods",
	Args:  cobra.NoArgs,
	RunE:  runMoods,
}

var tipsCmd = &cobra.Command{
	Use:   "tips [mood]",
	Short: "Show relaxation tips for a mood",
	Long: `Shows up to four relaxation tips and the suggested questions for a
mood. Mood names are case-insensitive; run 'emoticare moods' to list them.`,
	Args: cobra.ExactArgs(1),
	RunE: runTips,
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Show the quote of the day",
	Args:  cobra.NoArgs,
	RunE:  runQuote,
}

func init() {
	quoteCmd.Flags().StringVar(&quoteDate, "date", "", "show the quote for another day (YYYY-MM-DD)")
	rootCmd.AddCommand(moodsCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(quoteCmd)
}

func runMoods(cmd *cobra.Command, _ []string) error {
	wellness, err := getWellnessService()
	if err != nil {
		return err
	}
	for _, m := range wellness.Moods() {
		cmd.Println(m)
	}
	return nil
}

func runTips(cmd *cobra.Command, args []string) error {
	wellness, err := getWellnessService()
	if err != nil {
		return err
	}

	mood, err := domain.ParseMood(args[0])
	if err != nil {
		return err
	}

	tips, err := wellness.TipsForMood(cmd.Context(), mood)
	if err != nil {
		return fmt.Errorf("loading tips: %w", err)
	}
	questions, err := wellness.SuggestedQuestions(mood)
	if err != nil {
		return err
	}

	cmd.Printf("Feeling %s\n\n", mood)
	if len(tips) == 0 {
		cmd.Println("No tips for this mood yet.")
	} else {
		cmd.Println("Tips:")
		for _, tip := range tips {
			cmd.Printf("  • %s\n", tip)
		}
	}
	cmd.Println()
	cmd.Println("You could ask:")
	for _, q := range questions {
		cmd.Printf("  - %s\n", q)
	}
	return nil
}

func runQuote(cmd *cobra.Command, _ []string) error {
	wellness, err := getWellnessService()
	if err != nil {
		return err
	}

	day := time.Now()
	if quoteDate != "" {
		day, err = time.ParseInLocation(time.DateOnly, quoteDate, time.Local)
		if err != nil {
			return fmt.Errorf("%w: --date must be YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}

	quote, err := wellness.QuoteOfTheDay(cmd.Context(), day)
	if err != nil {
		return err
	}
	cmd.Println(quote)
	return nil
}
