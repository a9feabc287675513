package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lexvault-labs/lexvault/internal/core/domain"
)

var (
	providerModel      string
	providerEndpoint   string
	providerDeployment string
	providerTimeout    int
	providerDisable    bool
	providerEnable     bool
	providerNoKey      bool
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Manage language-model providers",
	Long: `Configure the tenant's language-model backends and the order they
are tried in. Backends: ollama, anthropic, openai, azure_openai.`,
	RunE: runProvidersStatus,
}

var providersStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe every backend and report availability",
	Args:  cobra.NoArgs,
	RunE:  runProvidersStatus,
}

var providersSetCmd = &cobra.Command{
	Use:   "set [kind]",
	Short: "Configure a backend for the tenant",
	Long: `Stores a backend's settings for the tenant. API keys are prompted
for without echo and encrypted at rest.`,
	Args: cobra.ExactArgs(1),
	RunE: runProvidersSet,
}

var providersChainCmd = &cobra.Command{
	Use:   "chain [kind...]",
	Short: "Set the fallback order",
	Long: `Replaces the tenant's fallback chain. Backends are tried in the
given order until one produces an answer.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProvidersChain,
}

var providersShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the tenant's provider configuration",
	Args:  cobra.NoArgs,
	RunE:  runProvidersShow,
}

func init() {
	providersSetCmd.Flags().StringVarP(&providerModel, "model", "m", "", "model override")
	providersSetCmd.Flags().StringVar(&providerEndpoint, "endpoint", "", "base URL override")
	providersSetCmd.Flags().StringVar(&providerDeployment, "deployment", "", "Azure OpenAI deployment name")
	providersSetCmd.Flags().IntVar(&providerTimeout, "timeout", 0, "per-attempt timeout in seconds")
	providersSetCmd.Flags().BoolVar(&providerDisable, "disable", false, "disable the backend in the chain")
	providersSetCmd.Flags().BoolVar(&providerEnable, "enable", false, "re-enable a disabled backend")
	providersSetCmd.Flags().BoolVar(&providerNoKey, "no-key", false, "skip the API key prompt")

	providersCmd.AddCommand(providersStatusCmd)
	providersCmd.AddCommand(providersSetCmd)
	providersCmd.AddCommand(providersChainCmd)
	providersCmd.AddCommand(providersShowCmd)
	rootCmd.AddCommand(providersCmd)
}

func runProvidersStatus(cmd *cobra.Command, _ []string) error {
	if providerAdmin == nil {
		return errors.New("provider admin not configured")
	}

	statuses := providerAdmin.CheckStatus(context.Background(), tenant())

	cmd.Println("Provider status:")
	cmd.Println()
	for _, s := range statuses {
		state := "unavailable"
		if s.Available {
			state = "available"
		}
		cmd.Printf("  %-13s %s", s.Provider, state)
		if s.Model != "" {
			cmd.Printf(" (%s)", s.Model)
		}
		if s.Error != "" {
			cmd.Printf(" - %s", s.Error)
		}
		cmd.Println()
	}
	return nil
}

func runProvidersSet(cmd *cobra.Command, args []string) error {
	if providerAdmin == nil {
		return errors.New("provider admin not configured")
	}

	kind := domain.ProviderKind(strings.ToLower(args[0]))
	if !kind.IsValid() {
		return fmt.Errorf("unknown provider %q", args[0])
	}

	cfg := domain.ProviderConfig{
		Model:          providerModel,
		Endpoint:       providerEndpoint,
		Deployment:     providerDeployment,
		TimeoutSeconds: providerTimeout,
	}
	switch {
	case providerDisable:
		disabled := false
		cfg.Enabled = &disabled
	case providerEnable:
		enabled := true
		cfg.Enabled = &enabled
	}

	if kind.RequiresAPIKey() && !providerNoKey {
		cmd.Print("Enter API key (leave empty to keep current): ")
		cfg.APIKey = readPassword()
		cmd.Println()
	}

	if err := providerAdmin.Configure(context.Background(), tenant(), kind, cfg); err != nil {
		return fmt.Errorf("failed to configure provider: %w", err)
	}

	cmd.Printf("Configured %s.\n", kind.Description())
	return nil
}

func runProvidersChain(cmd *cobra.Command, args []string) error {
	if providerAdmin == nil {
		return errors.New("provider admin not configured")
	}

	chain := make([]domain.ProviderKind, 0, len(args))
	for _, arg := range args {
		kind := domain.ProviderKind(strings.ToLower(arg))
		if !kind.IsValid() {
			return fmt.Errorf("unknown provider %q", arg)
		}
		chain = append(chain, kind)
	}

	if err := providerAdmin.SetChain(context.Background(), tenant(), chain); err != nil {
		return fmt.Errorf("failed to set chain: %w", err)
	}

	cmd.Printf("Fallback chain: %s\n", joinKinds(chain))
	return nil
}

func runProvidersShow(cmd *cobra.Command, _ []string) error {
	if providerAdmin == nil {
		return errors.New("provider admin not configured")
	}

	cfg, err := providerAdmin.Config(context.Background(), tenant())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cmd.Printf("Fallback chain: %s\n\n", joinKinds(cfg.Chain))
	for _, kind := range domain.ProviderKinds() {
		p, ok := cfg.Providers[kind]
		if !ok {
			continue
		}
		cmd.Printf("[%s]\n", kind)
		cmd.Printf("  Enabled:  %t\n", p.IsEnabled())
		if p.Model != "" {
			cmd.Printf("  Model:    %s\n", p.Model)
		}
		if p.Endpoint != "" {
			cmd.Printf("  Endpoint: %s\n", p.Endpoint)
		}
		if p.Deployment != "" {
			cmd.Printf("  Deployment: %s\n", p.Deployment)
		}
		if p.TimeoutSeconds > 0 {
			cmd.Printf("  Timeout:  %ds\n", p.TimeoutSeconds)
		}
		if p.APIKey != "" {
			cmd.Printf("  API Key:  (stored, encrypted)\n")
		}
		cmd.Println()
	}
	return nil
}

func joinKinds(kinds []domain.ProviderKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.String()
	}
	return strings.Join(parts, " -> ")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
