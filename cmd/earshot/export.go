package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/earshot/internal/export"
	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

var (
	exportCategory string
	exportCourse   string
	exportReporter string
	exportTag      string
	exportKeyword  string
	exportFrom     string
	exportTo       string
	exportOut      string
)

func init() {
	exportCmd.Flags().StringVar(&exportCategory, "category", "", "filter by category (text or tts)")
	exportCmd.Flags().StringVar(&exportCourse, "course", "", "filter by course name")
	exportCmd.Flags().StringVar(&exportReporter, "reporter", "", "filter by reporter nickname")
	exportCmd.Flags().StringVar(&exportTag, "tag", "", "filter by tag")
	exportCmd.Flags().StringVar(&exportKeyword, "keyword", "", "filter by description/course keyword")
	exportCmd.Flags().StringVar(&exportFrom, "from", "", "earliest date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&exportTo, "to", "", "latest date (YYYY-MM-DD, inclusive)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered observations as CSV",
	Long: `Export the observation log as CSV, optionally filtered.

Examples:
  # Everything, to stdout
  earshot export

  # June tts issues for one course
  earshot export --category tts --course "Everyday English" \
    --from 2024-06-01 --to 2024-06-30 --out june-tts.csv`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	f, err := buildFilter()
	if err != nil {
		return err
	}

	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()

	out := os.Stdout
	if exportOut != "" {
		file, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = file.Close() }()
		out = file
	}

	return svc.Export(cmd.Context(), f, out)
}

func buildFilter() (export.Filter, error) {
	f := export.Filter{
		Category: feedback.Category(exportCategory),
		Course:   exportCourse,
		Reporter: exportReporter,
		Tag:      exportTag,
		Keyword:  exportKeyword,
	}

	if f.Category != "" && f.Category != feedback.CategoryText && f.Category != feedback.CategoryTTS {
		return export.Filter{}, fmt.Errorf("category must be text or tts, got %q", exportCategory)
	}

	if exportFrom != "" {
		t, err := time.Parse("2006-01-02", exportFrom)
		if err != nil {
			return export.Filter{}, fmt.Errorf("from must be YYYY-MM-DD: %w", err)
		}
		f.From = t
	}
	if exportTo != "" {
		t, err := time.Parse("2006-01-02", exportTo)
		if err != nil {
			return export.Filter{}, fmt.Errorf("to must be YYYY-MM-DD: %w", err)
		}
		f.To = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return f, nil
}
