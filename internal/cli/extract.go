package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldrx/hcplog/internal/pipeline"
)

var (
	extractFile string
	extractTool string
)

// extractCmd runs the pipeline (or one tool) over ad-hoc text
var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract structured fields from interaction text",
	Long: `Extract runs the full extraction pipeline over the given text and
prints the merged result as JSON. With --tool only the named extractor
runs (hcp_name, date, time, sentiment, materials, materials_and_topics,
summary).

Example:
  hcplog extract "Met Dr. Smith on 12th Jan 2025 at 2 pm, shared brochure."
  hcplog extract --tool sentiment "HCP was not interested in the trial data."
  hcplog extract --file note.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractFile, "file", "", "read interaction text from file")
	extractCmd.Flags().StringVar(&extractTool, "tool", "", "run a single extractor instead of the full pipeline")
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := extractInput(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p := pipeline.NewFromConfig(cfg)

	var result any
	if extractTool != "" {
		res, err := p.Extractor().Dispatch(cmd.Context(), extractTool, text)
		if err != nil {
			return fmt.Errorf("dispatch (known tools: %s): %w",
				strings.Join(p.Extractor().ToolNames(), ", "), err)
		}
		result = res
	} else {
		result = p.Run(cmd.Context(), text)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func extractInput(args []string) (string, error) {
	if extractFile != "" {
		data, err := os.ReadFile(extractFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("provide interaction text as an argument or via --file")
}
