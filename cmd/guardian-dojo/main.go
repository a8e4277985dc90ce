// guardian-dojo is the training harness CLI: arena (one evaluation
// session), evolve (the multi-generation loop), and stats (record-store
// analytics).
//
// Usage:
//
//	guardian-dojo arena --config=<path>
//	guardian-dojo evolve --config=<path> --generations=<n>
//	guardian-dojo stats --config=<path>
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "guardian-dojo",
	Short: "Evolutionary training harness for Family Guardian AI prompts",
	Long:  "guardian-dojo evolves system prompts for Guardian AI agents by evaluating\nthem against synthetic and curated threat scenarios across generations.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(arenaCmd)
	rootCmd.AddCommand(evolveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
