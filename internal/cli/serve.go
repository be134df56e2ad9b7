package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/config"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
	"github.com/SmitUplenchwar2687/Tempo/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		tick       time.Duration
		source     string
		recordFile string
		configPath string
	)
	storageOpts := defaultStorageOptions()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Tempo time server",
		Long: `Starts an HTTP server that serves clock readings.

Endpoints:
  GET /                    Server info and current reading
  GET /health              Health check
  GET /api/now             Current reading (millis, seconds, RFC3339)
  GET /api/now/seconds     Whole-second reading only
  GET /api/latest/:source  Most recent stored reading for a source
  GET /api/history/:source Stored readings (?since=millis&limit=n)
  GET /dashboard/          Live clock dashboard
  WS  /ws                  WebSocket stream of tick readings`,
		Example: `  tempo serve
  tempo serve --addr :9090 --tick 250ms
  tempo serve --storage redis --redis-host redis.internal:6379
  tempo serve --record readings.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Server.Addr
			}
			if !cmd.Flags().Changed("tick") {
				tick = cfg.Server.Tick
			}
			if !cmd.Flags().Changed("source") {
				source = cfg.Server.Source
			}
			storageOpts.applyConfigIfUnset(cmd, &cfg.Storage)
			if err := storageOpts.normalize(); err != nil {
				return err
			}

			if tick <= 0 {
				return fmt.Errorf("tick must be positive, got %s", tick)
			}

			clk := clock.System
			store, err := storageOpts.build(clk)
			if err != nil {
				return err
			}
			defer store.Close()

			opts := server.Options{
				Hub:     server.NewHub(),
				Storage: store,
				Source:  source,
				Tick:    tick,
			}
			if recordFile != "" {
				opts.Recorder = recorder.New(nil)
			}

			srv := server.New(addr, clk, opts)

			log.Printf("Dashboard: http://localhost%s/dashboard/", addr)
			log.Printf("API:       http://localhost%s/api/now", addr)

			// Graceful shutdown on SIGINT/SIGTERM.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				log.Println("shutting down...")
				// Export recordings if enabled.
				if recordFile != "" && opts.Recorder != nil {
					log.Printf("exporting %d readings to %s", opts.Recorder.Len(), recordFile)
					if err := opts.Recorder.ExportFile(recordFile); err != nil {
						log.Printf("error exporting readings: %v", err)
					}
				}
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "sampling interval for stored and broadcast readings")
	cmd.Flags().StringVar(&source, "source", "system", "label for readings taken by this server")
	cmd.Flags().StringVar(&recordFile, "record", "", "record tick readings to JSON file (exported on shutdown)")
	cmd.Flags().StringVar(&configPath, "config", "", "path to JSON config file")
	storageOpts.addFlags(cmd)

	return cmd
}
