package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var memoLimit int

var memoCmd = &cobra.Command{
	Use:   "memo [topic]",
	Short: "Draft a legal memorandum on a research topic",
	Long: `Retrieves the passages most relevant to the topic and drafts a
structured legal memorandum grounded in them: issue presented, brief
answer, discussion with [n] citations, conclusion.`,
	Args: cobra.ExactArgs(1),
	RunE: runMemo,
}

func init() {
	memoCmd.Flags().IntVarP(&memoLimit, "limit", "n", 8, "maximum number of research excerpts")
	rootCmd.AddCommand(memoCmd)
}

func runMemo(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	memo, citations, err := answerService.Memorandum(context.Background(), tenant(), args[0], memoLimit)
	if err != nil {
		return fmt.Errorf("memorandum generation failed: %w", err)
	}

	data, err := json.MarshalIndent(memo, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))

	cmd.Println()
	cmd.Println("Sources:")
	for i := range citations {
		cmd.Printf("  [%d] %s\n", i+1, citationSource(citations[i]))
	}
	return nil
}
