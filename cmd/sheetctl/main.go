// Command sheetctl is a minimal front-end over the kernel: its only job
// is the one surface spec §6 assigns the CLI — optionally load a
// persisted sheet at startup — then dump the loaded grid so the kernel
// can be exercised without a TUI. The renderer, key-mapping layer and
// terminal input parser are all out of scope here, same as for the
// kernel itself.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "sheetctl [path]",
	Short:   "Load and dump a gridkernel sheet",
	Version: "0.1.0",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		return runDump(cmd, path)
	},
}
