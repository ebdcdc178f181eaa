package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sable/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "sable",
	Short: "Sable language front end",
	Long:  `Sable lexes, parses and lowers sable sources to IR`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 256, "maximum number of diagnostics per file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Root().PersistentFlags().GetString("color")
	return mode == "on" || (mode == "auto" && isTerminal(f))
}
