package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"timetabler/pkg/api"
	"timetabler/pkg/grid"
	"timetabler/pkg/logging"
	"timetabler/pkg/planner"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the planner over HTTP",
	Long:  `Start a JSON API exposing lecture search, the timetable collection, drag and drop moves and ICS export.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr()
		}

		ctx := cmd.Context()
		cache := newCatalogCache(ctx)
		h := api.NewHandler(planner.New(cfg.Page(), grid.DefaultLayout(), logger), cache, logger)

		// The API answers while the catalog loads; /status reports progress
		go func() {
			if err := h.LoadCatalog(ctx); err != nil {
				logger.Warn("catalog unavailable, retry with POST /api/v0/catalog/reload", "error", err)
			}
		}()

		if logging.ParseLevel(cfg.LogLevel) > logging.ParseLevel("debug") {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &http.Server{
			Addr:    addr,
			Handler: api.NewRouter(h, logger),
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address (defaults to the configured listen_addr)")
}
