package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/emoticare/internal/core/domain"
)

var (
	askJSON     bool
	askSources  bool
	askSpeak    bool
	searchJSON  bool
	searchLimit int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question",
	Long: `Answers a question in one short line using passages retrieved from the
support document. When nothing relevant is found a fallback reply is
printed and marked as not grounded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var searchCmd = &cobra.Command{
	Use:   "search [question]",
	Short: "Show the passages a question retrieves",
	Long: `Retrieves the passages most similar to a question without generating
an answer. Useful for checking what the assistant will read.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askSources, "sources", false, "print the passages the answer used")
	askCmd.Flags().BoolVar(&askSpeak, "speak", false, "read the answer aloud")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "show at most this many passages (0 = all retrieved)")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(searchCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	answers, err := getAnswerService(cmd.Context())
	if err != nil {
		return err
	}

	answer, err := answers.Answer(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askSpeak && svc.Voice != nil {
		svc.Voice.Say(answer.Text)
	}

	if askJSON {
		return printJSON(cmd, map[string]any{
			"question": answer.Question,
			"answer":   answer.Text,
			"grounded": answer.Grounded(),
			"passages": passagesJSON(answer.Passages),
		})
	}

	cmd.Println(answer.Text)
	if !answer.Grounded() {
		cmd.Println("(no matching passages in the support document)")
	}
	if askSources {
		printPassages(cmd, answer.Passages)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	answers, err := getAnswerService(cmd.Context())
	if err != nil {
		return err
	}

	hits, err := answers.Retrieve(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(hits) > searchLimit {
		hits = hits[:searchLimit]
	}

	if searchJSON {
		return printJSON(cmd, passagesJSON(hits))
	}

	if len(hits) == 0 {
		cmd.Println("No passages found.")
		return nil
	}
	printPassages(cmd, hits)
	return nil
}

func printPassages(cmd *cobra.Command, hits []domain.ScoredChunk) {
	cmd.Println()
	cmd.Println("Passages:")
	for i, h := range hits {
		title, _ := h.Chunk.Metadata["section_title"].(string)
		if title == "" {
			title = fmt.Sprintf("section %d", h.Chunk.Section+1)
		}
		cmd.Printf("  [%d] %s (%.2f)\n", i+1, title, h.Score)
		cmd.Printf("      %s\n", snippet(h.Chunk.Content, 160))
	}
}

func passagesJSON(hits []domain.ScoredChunk) []map[string]any {
	out := make([]map[string]any, len(hits))
	for i, h := range hits {
		out[i] = map[string]any{
			"chunk_id": h.Chunk.ID,
			"section":  h.Chunk.Section,
			"offset":   h.Chunk.Offset,
			"score":    h.Score,
			"content":  h.Chunk.Content,
		}
	}
	return out
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// snippet flattens whitespace and cuts text to at most n runes.
func snippet(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return text
}
