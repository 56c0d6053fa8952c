package cli

import (
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the support document",
	Long: `Loads the support document, splits it into chunks and embeds them.
With index.persist enabled the vectors are cached, so later runs only
re-embed when the document or the embedding model changes.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	answers, err := getAnswerService(cmd.Context())
	if err != nil {
		return err
	}

	info := answers.Info()
	cmd.Printf("Document:   %s\n", info.DocumentTitle)
	cmd.Printf("Path:       %s\n", info.DocumentPath)
	cmd.Printf("Sections:   %d\n", info.Sections)
	cmd.Printf("Chunks:     %d\n", info.Chunks)
	cmd.Printf("Embedding:  %s\n", info.ModelTag)
	if info.Reused {
		cmd.Println("Vectors reused from the cached index.")
	} else {
		cmd.Println("Vectors computed.")
	}
	return nil
}
