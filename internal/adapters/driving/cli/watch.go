package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/helicon-labs/ragview-cli/internal/adapters/driving/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Watch a directory and upload new files",
	Long: `Watches a directory and uploads every new or changed document to the
backend. The directory acts as an ingestion inbox: drop a file in and
it becomes queryable once the backend finishes processing it.

Accepted file types: ` + "pdf, txt, md" + `. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if uploads == nil || collection == nil {
		return errors.New("services not configured")
	}

	cmd.Printf("Watching %s (ctrl-c to stop)\n", args[0])

	w := watch.New(uploads, collection)
	return w.Run(cmd.Context(), args[0])
}
