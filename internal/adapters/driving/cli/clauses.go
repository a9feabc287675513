package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

var (
	clausesLimit int
	clausesJSON  bool
)

var clausesCmd = &cobra.Command{
	Use:   "clauses",
	Short: "Browse and run pre-built clause searches",
	Long: `Lists the clause library: named clause types with the retrieval
queries that find instances of them. Use "clauses search" to run one
against the tenant's documents.`,
	Args: cobra.NoArgs,
	RunE: runClausesList,
}

var clausesSearchCmd = &cobra.Command{
	Use:   "search [clause-id]",
	Short: "Find instances of a clause type in the tenant's documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runClausesSearch,
}

func init() {
	clausesSearchCmd.Flags().IntVarP(&clausesLimit, "limit", "n", 10, "maximum number of results")
	clausesSearchCmd.Flags().BoolVar(&clausesJSON, "json", false, "output results as JSON")

	clausesCmd.AddCommand(clausesSearchCmd)
	rootCmd.AddCommand(clausesCmd)
}

func runClausesList(cmd *cobra.Command, _ []string) error {
	cmd.Println("Clause library:")
	cmd.Println()
	for _, clause := range domain.ClauseLibrary() {
		cmd.Printf("  %-28s %s [%s]\n", clause.ID, clause.Name, clause.Category)
		cmd.Printf("  %-28s %s\n", "", clause.Description)
		cmd.Println()
	}
	cmd.Println(`Run "lexvault clauses search <clause-id>" to search for one.`)
	return nil
}

func runClausesSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	clause, citations, err := searchService.SearchClause(context.Background(), tenant(), args[0], clausesLimit)
	if err != nil {
		return fmt.Errorf("clause search failed: %w", err)
	}

	if clausesJSON {
		data, err := json.MarshalIndent(map[string]any{
			"clause":  clause,
			"results": citations,
		}, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("%s (%s)\n", clause.Name, clause.Category)
	cmd.Printf("%s\n\n", clause.Description)
	printCitations(cmd, citations)
	return nil
}
