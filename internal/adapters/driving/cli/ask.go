package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/adapters/driving/tui"
)

var (
	askTopK int
	askJSON bool
	askTUI  bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the tenant's documents",
	Long: `Retrieves the most relevant passages and generates an answer with
numbered citations. Use --tui for an interactive chat session.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "limit", "n", 5, "passages to retrieve")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the answer as JSON")
	askCmd.Flags().BoolVar(&askTUI, "tui", false, "open the interactive chat")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	if askTUI {
		return runChat()
	}

	if len(args) == 0 {
		return errors.New("a question is required unless --tui is set")
	}

	answer, err := answerService.Answer(context.Background(), tenant(), args[0], askTopK)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(answer, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(answer.Text)

	if len(answer.Citations) > 0 {
		cmd.Println("\nSources:")
		for i := range answer.Citations {
			cmd.Printf("  [%d] %s (%.4f)\n", i+1, citationSource(answer.Citations[i]), answer.Citations[i].Score)
		}
	}
	if len(answer.FollowUps) > 0 {
		cmd.Println("\nFollow-up questions:")
		for _, q := range answer.FollowUps {
			cmd.Printf("  - %s\n", q)
		}
	}
	return nil
}

func runChat() error {
	model := tui.NewChat(answerService, tenant(), askTopK)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
