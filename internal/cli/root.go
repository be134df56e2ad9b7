package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root tempo command.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tempo",
		Short: "Injectable clocks and a live time service",
		Long: `Tempo gives your code an injectable clock instead of time.Now().
Read the current instant in epoch milliseconds, freeze it for tests,
serve it over HTTP/WebSocket, and record and replay reading streams.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newNowCmd(),
		newServeCmd(),
		newWatchCmd(),
		newReplayCmd(),
		newGenerateCmd(),
	)

	return root
}
