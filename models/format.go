package models

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// FormatJobs lays out jobs as a table.
func FormatJobs(jobs []Job) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 5, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSOURCE\tCOLORS\tTHRESHOLDS\tBLOCK\tGRID\t")
	for _, j := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%dx%d\t\n",
			j.CreatedAt.Format("2006-01-02 15:04"), j.Source, j.Colors(), j.Thresholds, j.BlockSize, j.Cols, j.Rows)
	}
	w.Flush()
	return b.String()
}
