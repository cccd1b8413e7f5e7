// Earshot is a feedback collection daemon for text-to-speech QA.
//
// Testers record observations about courses (tags, issue description,
// feeling tags); each observation is auto-classified as a text or tts issue
// at creation. The daemon serves an HTTP API for collection and reporting;
// the report and export subcommands run the same engine directly against the
// configured store.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "earshot",
	Short: "Feedback collection and reporting for text-to-speech QA",
	Long: `earshot collects tester feedback about a text-to-speech product,
auto-classifies each observation (text vs tts issue), and aggregates the log
into windowed reports.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("earshot %s (%s)\n", version, gitCommit)
	},
}
