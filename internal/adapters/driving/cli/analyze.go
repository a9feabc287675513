package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

var (
	analyzeKind    string
	analyzeRefresh bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [doc-id]",
	Short: "Run a structured analysis of a document",
	Long: `Generates a structured analysis of an indexed document. Results are
cached per document and kind; use --refresh to regenerate.

Kinds: summary, risks, checklist, obligations, timeline.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeClearCmd = &cobra.Command{
	Use:   "clear [doc-id]",
	Short: "Drop all cached analyses for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyzeClear,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeKind, "kind", "k", "summary", "analysis kind")
	analyzeCmd.Flags().BoolVar(&analyzeRefresh, "refresh", false, "regenerate even when cached")

	analyzeCmd.AddCommand(analyzeClearCmd)
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	kind := domain.AnalysisKind(strings.ToLower(analyzeKind))
	record, err := analysisService.Analyze(context.Background(), tenant(), args[0], kind, analyzeRefresh)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	data, err := json.MarshalIndent(record.Result, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func runAnalyzeClear(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	removed, err := analysisService.Clear(context.Background(), tenant(), args[0])
	if err != nil {
		return fmt.Errorf("failed to clear analyses: %w", err)
	}

	cmd.Printf("Removed %d cached analyses.\n", removed)
	return nil
}
