package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldrx/hcplog/internal/debuglog"
	"github.com/fieldrx/hcplog/internal/extract"
	"github.com/fieldrx/hcplog/internal/llm"
	"github.com/fieldrx/hcplog/internal/pipeline"
)

const selfTestSample = "Met Dr. Smith on 12th Jan 2025 at 2 pm, discussed Product-X efficacy, " +
	"positive sentiment, shared brochure and 5 samples."

// selftestCmd validates environment and connectivity
var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Validate configuration, gateway connectivity and the pipeline",
	Long: `Selftest reports whether LLM endpoint configuration is present, pings
the gateway once, then runs the canonical sample text through the full
pipeline and prints the extraction result. The pipeline part succeeds
even with no LLM configured; fallbacks carry it.`,
	RunE: runSelftest,
}

func init() {
	rootCmd.AddCommand(selftestCmd)
}

func runSelftest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	diag := debuglog.New(cfg.LLM.DebugLog)
	llmCfg := llm.ConfigFromModel(cfg.LLM)

	provider, err := llm.NewProvider(llmCfg)
	if err != nil {
		fmt.Printf("provider:   INVALID (%v)\n", err)
		provider = nil
	} else if provider == nil {
		fmt.Println("provider:   not configured (fallback-only mode)")
	} else {
		fmt.Printf("provider:   %s (model %s)\n", provider.Name(), llmCfg.Model)
	}

	gateway := llm.NewGateway(provider, llmCfg, diag)
	if gateway.Enabled() {
		if gateway.Ping(cmd.Context()) {
			fmt.Println("gateway:    ping ok")
		} else {
			fmt.Println("gateway:    ping FAILED (extraction will use fallbacks)")
		}
	} else {
		fmt.Println("gateway:    disabled")
	}

	p := pipeline.New(extract.New(gateway, diag), diag)
	result := p.Run(cmd.Context(), selfTestSample)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println("extraction:")
	fmt.Println(string(out))
	return nil
}
