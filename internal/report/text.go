// Package report renders analysis results: the text report file, the
// console sections, the spreadsheet export and the YAML summary.
package report

import (
	"embed"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/leapstack-labs/loanlens/internal/analysis"
	"github.com/leapstack-labs/loanlens/internal/stats"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(
	template.New("report.txt.tmpl").
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"fixed": fixed}).
		ParseFS(templateFS, "templates/report.txt.tmpl"),
)

// fixed formats v with two decimals. An undefined value prints as 0.00.
func fixed(v float64) string {
	return fmt.Sprintf("%.2f", stats.OrZero(v))
}

// Render writes the text report for f to w.
func Render(w io.Writer, f analysis.Figures) error {
	if err := reportTemplate.Execute(w, f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// WriteFile renders the text report for f into path, replacing any
// existing file.
func WriteFile(path string, f analysis.Figures) (err error) {
	out, err := os.Create(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close report file: %w", cerr)
		}
	}()

	return Render(out, f)
}
