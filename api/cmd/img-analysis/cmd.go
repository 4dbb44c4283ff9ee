package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"img-analysis/api/internal/config"
	"img-analysis/api/internal/handle"
	"img-analysis/api/internal/httpserver"
	"img-analysis/api/internal/logger"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "img-analysis",
		Short:         "Detects labels on an image and describes them in another language",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML config file")
	root.AddCommand(newServeCmd(), newInvokeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			log := logger.GetLogger()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			h, err := buildHandle(ctx, cfg, log)
			if err != nil {
				return err
			}
			srv := httpserver.New(":"+cfg.Port, h, log)

			errc := make(chan error, 1)
			go func() {
				log.Infof("img-analysis listening on %s (vision=%s, translate=%s, mode=%s)",
					srv.Addr, cfg.VisionEngine, cfg.TranslateEngine, cfg.Translate.Mode)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newInvokeCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:     "invoke",
		Short:   "Run one invocation event from a JSON file and print the response",
		Example: `img-analysis invoke --path request.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ev, err := readEvent(path)
			if err != nil {
				return err
			}
			h, err := buildHandle(cmd.Context(), cfg, logger.GetLogger())
			if err != nil {
				return err
			}
			resp := h.Invoke(cmd.Context(), ev)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "request.json", "path to the event JSON")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	lvl := logger.SetLevel(cfg.LogLevel)
	logger.GetLogger().Debugf("log level set to %s", lvl)
	return cfg, nil
}

func readEvent(path string) (handle.Event, error) {
	var ev handle.Event
	b, err := os.ReadFile(path)
	if err != nil {
		return ev, err
	}
	if err := json.Unmarshal(b, &ev); err != nil {
		return ev, fmt.Errorf("bad event %s: %w", path, err)
	}
	return ev, nil
}
