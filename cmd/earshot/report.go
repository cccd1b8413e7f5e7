package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/earshot/internal/classifier"
	"github.com/fyrsmithlabs/earshot/internal/collector"
	"github.com/fyrsmithlabs/earshot/internal/config"
	"github.com/fyrsmithlabs/earshot/internal/logging"
	"github.com/fyrsmithlabs/earshot/internal/render"
	"github.com/fyrsmithlabs/earshot/internal/report"
	"github.com/fyrsmithlabs/earshot/internal/store"
)

var (
	reportWindow string
	reportJSON   bool
)

func init() {
	reportCmd.Flags().StringVar(&reportWindow, "window", "7d", "report window: 7d, 30d, or all")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output the report as JSON")
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Aggregate the observation log into a windowed report",
	Long: `Aggregate the stored observation log over the chosen window and
print counts, top tags/courses/feelings, the daily trend, and the
period-over-period comparison.

Examples:
  # Last 7 days, rendered for the terminal
  earshot report

  # Whole log, as JSON
  earshot report --window all --json`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	w, err := report.ParseWindow(reportWindow)
	if err != nil {
		return fmt.Errorf("window must be 7d, 30d, or all, got %q", reportWindow)
	}

	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	r, err := svc.Report(cmd.Context(), w)
	if err != nil {
		return err
	}

	if reportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
	fmt.Println(render.Report(r))
	return nil
}

// openService builds a collector service against the configured store for
// the one-shot CLI commands. Events and policy watching stay off; report and
// export never classify or publish.
func openService() (collector.Service, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}

	st, err := store.New(cfg, logger.Named("store"))
	if err != nil {
		return nil, nil, err
	}

	svc, err := collector.NewService(st, classifier.NewHandle(classifier.DefaultPolicy()), nil, logger.Named("collector"))
	if err != nil {
		_ = st.Close()
		return nil, nil, err
	}

	return svc, func() {
		_ = st.Close()
		_ = logger.Sync()
	}, nil
}
