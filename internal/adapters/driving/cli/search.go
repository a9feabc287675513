package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

var (
	searchLimit   int
	searchJSON    bool
	searchSuggest bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the tenant's documents",
	Long: `Performs semantic search across the tenant's indexed documents and
prints the best-matching passages with their sources.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 5, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchSuggest, "suggest", false, "also suggest expanded queries and related terms")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := args[0]
	ctx := context.Background()

	citations, err := searchService.Search(ctx, tenant(), query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(citations, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	printCitations(cmd, citations)

	if searchSuggest && analysisService != nil {
		suggestions, err := analysisService.ExpandQuery(ctx, tenant(), query)
		if err != nil {
			cmd.Printf("Suggestions unavailable: %v\n", err)
			return nil
		}
		printSuggestions(cmd, suggestions)
	}
	return nil
}

func printCitations(cmd *cobra.Command, citations []domain.Citation) {
	if len(citations) == 0 {
		cmd.Println("No results found.")
		return
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range citations {
		cmd.Printf("  [%d] %s (%.4f)\n", i+1, citationSource(citations[i]), citations[i].Score)
		cmd.Printf("      %s\n", snippet(citations[i].Text, 200))
		cmd.Println()
	}
}

func printSuggestions(cmd *cobra.Command, suggestions map[string]any) {
	// Key names follow the query-expansion prompt's response contract.
	labels := []struct{ key, heading string }{
		{"suggestions", "Suggested queries"},
		{"legal_terms", "Related legal terms"},
	}
	for _, l := range labels {
		values, ok := suggestions[l.key].([]any)
		if !ok || len(values) == 0 {
			continue
		}
		cmd.Printf("%s:\n", l.heading)
		for _, v := range values {
			cmd.Printf("  - %v\n", v)
		}
		cmd.Println()
	}
}

// citationSource renders a citation's origin, with the page when known.
func citationSource(c domain.Citation) string {
	if c.Page > 0 {
		return fmt.Sprintf("%s, page %d", c.DocumentName, c.Page)
	}
	return c.DocumentName
}

// snippet truncates text for single-result display, never splitting a
// UTF-8 rune.
func snippet(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	for maxChars > 0 && !utf8.RuneStart(text[maxChars]) {
		maxChars--
	}
	return text[:maxChars] + "..."
}
