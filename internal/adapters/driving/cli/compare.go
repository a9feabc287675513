package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare [doc-id-a] [doc-id-b]",
	Short: "Compare the provisions of two documents",
	Long: `Contrasts two indexed documents: common provisions, key differences
and a recommendation on which terms are more favourable.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	result, err := analysisService.Compare(context.Background(), tenant(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}
