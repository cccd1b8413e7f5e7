package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fyrsmithlabs/earshot/internal/feedback"
)

// header is the fixed CSV column order.
var header = []string{
	"timestamp", "course", "reporter", "device", "os",
	"category", "tags", "description", "feeling_tags", "feeling_other",
}

// WriteCSV renders one row per observation in the fixed column order. Every
// cell is quote-wrapped with internal quotes doubled; encoding/csv quotes
// only when required, which would make the output depend on cell content, so
// the escaping is done directly.
func WriteCSV(w io.Writer, obs []feedback.Observation, lookup Lookup) error {
	if err := writeRow(w, header); err != nil {
		return err
	}
	for _, o := range obs {
		reporter, device, osVersion := "unknown", "unknown", "unknown"
		if s, ok := lookup[o.SessionID]; ok {
			reporter, device, osVersion = s.Nickname, s.DeviceModel, s.OSVersion
		}
		row := []string{
			o.CreatedAt.Format(time.RFC3339),
			o.CourseName,
			reporter,
			device,
			osVersion,
			string(o.Category),
			strings.Join(o.Tags, "|"),
			o.IssueDescription,
			strings.Join(o.FeelingTags, "|"),
			o.FeelingOther,
		}
		if err := writeRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(w io.Writer, cells []string) error {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	if _, err := fmt.Fprintln(w, strings.Join(quoted, ",")); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}
