package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldrx/hcplog/internal/logger"
	"github.com/fieldrx/hcplog/internal/pipeline"
	"github.com/fieldrx/hcplog/internal/server"
	"github.com/fieldrx/hcplog/internal/store"
)

var (
	serveAddr string
	serveDB   string
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interaction logging HTTP API",
	Long: `Serve starts the HTTP API used by the CRM frontend:

  POST /api/interactions/chat             log a new interaction
  POST /api/interactions/edit/{id}        re-extract from corrected text
  POST /api/interactions/summarize        summary tool only
  POST /api/interactions/next-best-action follow-up suggestion
  POST /api/interactions/entities         materials/topics tool only
  GET  /api/interactions                  list logged interactions
  GET  /api/interactions/export           XLSX export`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default :8080)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "sqlite database path (default hcplog.db)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveDB != "" {
		cfg.Store.Path = serveDB
	}

	log := logger.New(cfg.Log)

	st, err := store.Open(cfg.Store.Path, cfg.Store.CacheTTL)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	p := pipeline.NewFromConfig(cfg)
	srv := server.New(p, st, log)

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.Server.Addr).Info("listening")
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
