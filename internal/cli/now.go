package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

func newNowCmd() *cobra.Command {
	var (
		at          int64
		secondsOnly bool
		outputJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current clock reading",
		Long: `Prints one reading from the wall-clock in epoch milliseconds.

With --at, reads from a clock frozen at the given instant instead,
which is useful for checking how an instant converts to whole seconds.`,
		Example: `  tempo now
  tempo now --seconds
  tempo now --at 1500 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var clk clock.Clock = clock.System
			source := "system"
			if cmd.Flags().Changed("at") {
				clk = clock.NewConstant(clock.Millis(at))
				source = "fixed"
			}

			rd := recorder.Take(source, clk)
			out := cmd.OutOrStdout()

			if outputJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rd)
			}

			if secondsOnly {
				fmt.Fprintln(out, rd.Seconds)
				return nil
			}

			fmt.Fprintf(out, "millis:  %d\n", rd.Millis)
			fmt.Fprintf(out, "seconds: %d\n", rd.Seconds)
			fmt.Fprintf(out, "rfc3339: %s\n", rd.Millis.Time().Format(time.RFC3339Nano))
			return nil
		},
	}

	cmd.Flags().Int64Var(&at, "at", 0, "read from a clock frozen at this instant (epoch millis)")
	cmd.Flags().BoolVar(&secondsOnly, "seconds", false, "print only the whole-second reading")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output the reading as JSON")

	return cmd
}
