package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldrx/hcplog/internal/export"
	"github.com/fieldrx/hcplog/internal/store"
)

var (
	exportDB  string
	exportOut string
)

// exportCmd writes logged interactions to an XLSX workbook
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged interactions to an XLSX workbook",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportDB, "db", "", "sqlite database path (default hcplog.db)")
	exportCmd.Flags().StringVar(&exportOut, "out", "interactions.xlsx", "output file path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if exportDB != "" {
		cfg.Store.Path = exportDB
	}

	st, err := store.Open(cfg.Store.Path, cfg.Store.CacheTTL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	records, err := st.ListInteractions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list interactions: %w", err)
	}

	workbook, err := export.InteractionsXLSX(records)
	if err != nil {
		return fmt.Errorf("build workbook: %w", err)
	}

	if err := os.WriteFile(exportOut, workbook, 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}

	fmt.Printf("Exported %d interaction(s) to %s\n", len(records), exportOut)
	return nil
}
