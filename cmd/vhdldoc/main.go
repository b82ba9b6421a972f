// Command vhdldoc extracts documentation metadata from VHDL sources.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vhdldoc",
	Short: "Extract documentation metadata from VHDL sources",
	Long: `vhdldoc scans VHDL source files for package, type, subprogram and
component declarations and reports them along with their documentation
metacomments.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging on stderr")
}

// newLogger returns the logger the commands pass to the extractor.
// Without --verbose it is nil, which disables logging entirely.
func newLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
