package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldrx/hcplog/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "hcplog",
	Short: "hcplog - log HCP interactions and extract structured fields",
	Long: `hcplog records free-text notes about sales-rep / healthcare-provider
interactions and extracts structured fields from them: HCP name, date,
time, sentiment, materials shared, samples distributed, topics and a
short summary.

Extraction is LLM-first with deterministic regex fallbacks, so the
pipeline keeps working (with reduced quality) when no LLM endpoint is
configured or reachable.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hcplog v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.hcplog/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and HCPLOG_* environment variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.hcplog")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("HCPLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv alone does not surface nested keys through Unmarshal
	for _, key := range []string{
		"llm.provider", "llm.model", "llm.api_key", "llm.base_url",
		"llm.timeout", "llm.max_tokens", "llm.temperature",
		"llm.requests_per_second", "llm.debug_log",
		"server.addr", "store.path", "store.cache_ttl",
		"log.level", "log.format",
	} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults, config file and environment into one Config
func loadConfig() (model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse configuration: %w", err)
	}
	applyEnvFallbacks(&cfg)
	return cfg, nil
}

// applyEnvFallbacks honors the legacy GROQ_* variable names and enables
// the openai-compatible provider when endpoint plus credential are set.
// Missing endpoint or credential is a recognized state: extraction then
// runs fallback-only.
func applyEnvFallbacks(cfg *model.Config) {
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = os.Getenv("GROQ_API_URL")
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" && cfg.LLM.Model == model.DefaultConfig().LLM.Model {
		cfg.LLM.Model = v
	}
	if cfg.LLM.Provider == "" && cfg.LLM.APIKey != "" && cfg.LLM.BaseURL != "" {
		cfg.LLM.Provider = "openai"
	}
}
