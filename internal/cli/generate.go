package cli

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/config"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate sample reading files and config",
		Long: `Generates sample data for testing and experimentation.

Use "generate readings" to create a sample readings JSON file.
Use "generate config" to create an example config JSON file.`,
	}

	cmd.AddCommand(newGenerateReadingsCmd(), newGenerateConfigCmd())
	return cmd
}

func newGenerateReadingsCmd() *cobra.Command {
	var (
		output   string
		count    int
		source   string
		start    int64
		interval time.Duration
		jitter   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "readings",
		Short: "Generate a sample readings JSON file",
		Long: `Creates a synthetic reading stream with configurable spacing.

Jitter shifts each reading by a random offset in [-jitter, +jitter],
which is handy for exercising replay gap and regression reporting.`,
		Example: `  tempo generate readings --output readings.json
  tempo generate readings --count 1000 --interval 100ms --jitter 20ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			rec := recorder.New(nil)
			ms := clock.Millis(start)
			for i := 0; i < count; i++ {
				at := ms
				if jitter > 0 {
					at += clock.Millis(rand.Int63n(2*jitter.Milliseconds()+1) - jitter.Milliseconds())
					if at < 0 {
						at = 0
					}
				}
				rec.Record(recorder.Reading{
					Source:  source,
					Millis:  at,
					Seconds: at.Seconds(),
				})
				ms += clock.Millis(interval.Milliseconds())
			}

			if err := rec.ExportFile(output); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d readings to %s\n", count, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "readings.json", "output file path")
	cmd.Flags().IntVar(&count, "count", 100, "number of readings to generate")
	cmd.Flags().StringVar(&source, "source", "system", "source label for generated readings")
	cmd.Flags().Int64Var(&start, "start", 1704067200000, "first instant (epoch millis)")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "spacing between readings")
	cmd.Flags().DurationVar(&jitter, "jitter", 0, "random offset applied to each reading")

	return cmd
}

func newGenerateConfigCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate an example config JSON file",
		Example: `  tempo generate config
  tempo generate config --output tempo.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(output); err == nil {
				return fmt.Errorf("%s already exists, not overwriting", output)
			}
			if err := config.WriteExample(output); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote example config to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&output, "output", "tempo.json", "output file path")
	return cmd
}
