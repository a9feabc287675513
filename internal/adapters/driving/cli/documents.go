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
	documentsJSON bool
	termsJSON     bool
)

var documentsCmd = &cobra.Command{
	Use:   "documents",
	Short: "Manage uploaded documents",
	Long:  `List, inspect, print or delete uploaded documents.`,
}

var documentsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tenant's documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentsList,
}

var documentsShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsShow,
}

var documentsContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print the document's extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsContent,
}

var documentsTermsCmd = &cobra.Command{
	Use:   "terms [doc-id]",
	Short: "Extract key terms and classify the document",
	Long: `Extracts parties, dates, monetary amounts, defined terms, governing
law and legal references by pattern matching, and classifies the
document type. No model call is involved.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentsTerms,
}

var documentsDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its index entries",
	Long:  `Removes the document record, its vector index entries, its cached analyses and the stored file.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentsDelete,
}

func init() {
	documentsListCmd.Flags().BoolVar(&documentsJSON, "json", false, "output as JSON")
	documentsTermsCmd.Flags().BoolVar(&termsJSON, "json", false, "output as JSON")

	documentsCmd.AddCommand(documentsListCmd)
	documentsCmd.AddCommand(documentsShowCmd)
	documentsCmd.AddCommand(documentsContentCmd)
	documentsCmd.AddCommand(documentsTermsCmd)
	documentsCmd.AddCommand(documentsDeleteCmd)
	rootCmd.AddCommand(documentsCmd)
}

func runDocumentsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docs, err := documentService.List(context.Background(), tenant())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if documentsJSON {
		data, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	if len(docs) == 0 {
		cmd.Println("No documents uploaded.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    File:     %s (%s)\n", docs[i].Filename, formatSize(docs[i].FileSize))
		cmd.Printf("    Status:   %s\n", docs[i].Status)
		if docs[i].Status == domain.StatusReady {
			cmd.Printf("    Indexed:  %d pages, %d chunks\n", docs[i].PageCount, docs[i].ChunkCount)
		}
		if docs[i].Status == domain.StatusError {
			cmd.Printf("    Error:    %s\n", docs[i].ErrorMessage)
		}
		cmd.Printf("    Uploaded: %s\n", docs[i].UploadedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}
	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentsShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	doc, err := documentService.Get(context.Background(), tenant(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  File:      %s\n", doc.Filename)
	cmd.Printf("  Type:      %s\n", doc.FileType)
	cmd.Printf("  Size:      %s\n", formatSize(doc.FileSize))
	cmd.Printf("  Status:    %s\n", doc.Status)
	cmd.Printf("  Pages:     %d\n", doc.PageCount)
	cmd.Printf("  Chunks:    %d\n", doc.ChunkCount)
	cmd.Printf("  Uploaded:  %s\n", doc.UploadedAt.Format("2006-01-02 15:04:05"))
	if doc.ProcessedAt != nil {
		cmd.Printf("  Processed: %s\n", doc.ProcessedAt.Format("2006-01-02 15:04:05"))
	}
	if doc.ErrorMessage != "" {
		cmd.Printf("  Error:     %s\n", doc.ErrorMessage)
	}
	return nil
}

func runDocumentsContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	pages, err := documentService.Content(context.Background(), tenant(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	for i := range pages {
		if pages[i].Number > 0 {
			cmd.Printf("--- Page %d ---\n", pages[i].Number)
		}
		cmd.Println(pages[i].Text)
	}
	return nil
}

func runDocumentsTerms(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	report, err := analysisService.KeyTerms(context.Background(), tenant(), args[0])
	if err != nil {
		return fmt.Errorf("key-term extraction failed: %w", err)
	}

	if termsJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Document: %s\n", report.Filename)
	cmd.Printf("Type:     %s\n", report.DocumentType)

	printTermList(cmd, "Parties", report.Terms.Parties)
	printTermList(cmd, "Dates", report.Terms.Dates)
	printTermList(cmd, "Monetary amounts", report.Terms.MonetaryAmounts)
	printTermList(cmd, "Defined terms", report.Terms.DefinedTerms)
	printTermList(cmd, "Governing law", report.Terms.GoverningLaw)
	printTermList(cmd, "References", report.Terms.References)
	return nil
}

func printTermList(cmd *cobra.Command, heading string, values []string) {
	if len(values) == 0 {
		return
	}
	cmd.Printf("\n%s:\n", heading)
	for _, v := range values {
		cmd.Printf("  - %s\n", v)
	}
}

func runDocumentsDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	if err := documentService.Delete(context.Background(), tenant(), args[0]); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s.\n", args[0])
	return nil
}

// formatSize renders a byte count in a compact human form.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
