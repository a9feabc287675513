package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

var uploadWait bool

var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload and index a document",
	Long: `Uploads a document and indexes it for search. Supported formats:
PDF, DOCX, TXT and Markdown. Processing runs in the background; by
default the command waits for it to finish.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().BoolVar(&uploadWait, "wait", true, "wait for indexing to finish")
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := context.Background()

	doc, err := documentService.Upload(ctx, tenant(), args[0])
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	cmd.Printf("Uploaded %s (%s)\n", doc.Filename, doc.ID)

	if !uploadWait {
		cmd.Println("Indexing in the background. Check progress with 'lexvault documents show'.")
		return nil
	}

	cmd.Println("Indexing...")
	if processingWaiter != nil {
		processingWaiter.Wait()
	}

	doc, err = documentService.Get(ctx, tenant(), doc.ID)
	if err != nil {
		return fmt.Errorf("checking processing result: %w", err)
	}

	switch doc.Status {
	case domain.StatusReady:
		cmd.Printf("Indexed: %d pages, %d chunks.\n", doc.PageCount, doc.ChunkCount)
	case domain.StatusError:
		return fmt.Errorf("processing failed: %s", doc.ErrorMessage)
	default:
		cmd.Printf("Status: %s\n", doc.Status)
	}
	return nil
}
