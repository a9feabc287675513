// Package cli implements the lexvault command-line interface on cobra.
// Commands talk to the core exclusively through the driving ports;
// wiring happens once in the root command's pre-run.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/lexvault-labs/lexvault/internal/core/ports/driven"
	"github.com/lexvault-labs/lexvault/internal/core/ports/driving"
	"github.com/lexvault-labs/lexvault/internal/logger"
)

// version is set by Execute.
var version = "dev"

// Persistent flags.
var (
	flagVerbose bool
	flagTenant  string
	flagConfig  string
)

// Services injected by initApp (or by tests via SetServices).
var (
	documentService driving.DocumentService
	searchService   driving.SearchService
	answerService   driving.AnswerService
	analysisService driving.AnalysisService
	providerAdmin   driving.ProviderAdmin
	textExtractor   driven.TextExtractor

	// processingWaiter blocks until background document processing
	// finishes, so commands do not exit mid-ingest.
	processingWaiter interface{ Wait() }
)

var rootCmd = &cobra.Command{
	Use:   "lexvault",
	Short: "Tenant-scoped legal document search and analysis",
	Long: `LexVault ingests legal documents, indexes them for semantic search,
and answers questions about them with cited sources.

Documents, search results and analyses are scoped to a tenant; pass
--tenant or set a default in the config file.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagTenant, "tenant", "t", "", "tenant to operate as (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config directory (default ~/.lexvault)")
}

// Services bundles everything the commands need. Tests inject fakes
// through SetServices; production wiring goes through initApp.
type Services struct {
	Documents driving.DocumentService
	Search    driving.SearchService
	Answer    driving.AnswerService
	Analysis  driving.AnalysisService
	Providers driving.ProviderAdmin
	Extractor driven.TextExtractor
	Waiter    interface{ Wait() }
}

// SetServices installs the given services and disables automatic wiring.
func SetServices(s *Services) {
	documentService = s.Documents
	searchService = s.Search
	answerService = s.Answer
	analysisService = s.Analysis
	providerAdmin = s.Providers
	textExtractor = s.Extractor
	processingWaiter = s.Waiter
}

// tenant resolves the effective tenant for the current invocation.
func tenant() string {
	return flagTenant
}

// Execute runs the CLI with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}

// initApp wires the application unless services were injected already.
func initApp(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if documentService != nil {
		if flagTenant == "" {
			flagTenant = "default"
		}
		return nil
	}
	return wireServices()
}
