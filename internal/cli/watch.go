package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

func newWatchCmd() *cobra.Command {
	var (
		interval   time.Duration
		count      int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sample the wall-clock at an interval",
		Long: `Takes readings from the wall-clock at a fixed interval and prints
them as they arrive. Stop with Ctrl-C, or use --count to stop after
a fixed number of readings.`,
		Example: `  tempo watch
  tempo watch --interval 100ms --count 10
  tempo watch --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			enc := json.NewEncoder(out)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			taken := 0
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					rd := recorder.Take("system", clock.System)
					if outputJSON {
						if err := enc.Encode(rd); err != nil {
							return err
						}
					} else {
						fmt.Fprintf(out, "%d ms  %d s  %s\n",
							rd.Millis, rd.Seconds,
							rd.Millis.Time().Format(time.RFC3339Nano))
					}

					taken++
					if count > 0 && taken >= count {
						return nil
					}
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "sampling interval")
	cmd.Flags().IntVar(&count, "count", 0, "stop after this many readings (0 = run until interrupted)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output readings as newline-delimited JSON")

	return cmd
}
