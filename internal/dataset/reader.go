package dataset

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// naTokens are the cell values read as missing by every profile.
var naTokens = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// Options controls how cells are decoded.
type Options struct {
	// BlankAsMissing treats a single-space cell as missing.
	BlankAsMissing bool

	// Coerce lists numeric columns whose unparseable cells become null
	// instead of failing the read.
	Coerce []string
}

// AnalyzeOptions decodes cells the way the analyzer reads the file.
var AnalyzeOptions = Options{}

// LoadOptions decodes cells the way the loader reads the file.
var LoadOptions = Options{
	BlankAsMissing: true,
	Coerce: []string{
		core.ColLoanAmount,
		core.ColLoanAmountTerm,
		core.ColCreditHistory,
	},
}

func (o Options) coerces(column string) bool {
	for _, c := range o.Coerce {
		if c == column {
			return true
		}
	}
	return false
}

func (o Options) missing(cell string) bool {
	if naTokens[cell] {
		return true
	}
	return o.BlankAsMissing && cell == " "
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string, opts Options) ([]core.LoanApplication, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	apps, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return apps, nil
}

// Read decodes a CSV stream into loan applications, one per data row.
func Read(r io.Reader, opts Options) ([]core.LoanApplication, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty file: %w", &MissingColumnError{Column: core.ColLoanID})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	var apps []core.LoanApplication
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		d := decoder{record: record, idx: idx, opts: opts, line: line}
		app := d.decode()
		if d.err != nil {
			return nil, d.err
		}
		apps = append(apps, app)
	}

	return apps, nil
}

// indexHeader maps every required column to its position in the header.
func indexHeader(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, seen := positions[name]; !seen {
			positions[name] = i
		}
	}

	idx := make(map[string]int, len(core.Columns))
	for _, col := range core.Columns {
		pos, ok := positions[col]
		if !ok {
			return nil, &MissingColumnError{Column: col}
		}
		idx[col] = pos
	}
	return idx, nil
}

// decoder converts one CSV record, keeping the first error it meets.
type decoder struct {
	record []string
	idx    map[string]int
	opts   Options
	line   int
	err    error
}

func (d *decoder) decode() core.LoanApplication {
	return core.LoanApplication{
		LoanID:            d.text(core.ColLoanID),
		Gender:            d.text(core.ColGender),
		Married:           d.text(core.ColMarried),
		Dependents:        d.text(core.ColDependents),
		Education:         d.text(core.ColEducation),
		SelfEmployed:      d.text(core.ColSelfEmployed),
		ApplicantIncome:   d.number(core.ColApplicantIncome),
		CoapplicantIncome: d.number(core.ColCoapplicantIncome),
		LoanAmount:        d.number(core.ColLoanAmount),
		LoanAmountTerm:    d.number(core.ColLoanAmountTerm),
		CreditHistory:     d.number(core.ColCreditHistory),
		PropertyArea:      d.text(core.ColPropertyArea),
		LoanStatus:        d.text(core.ColLoanStatus),
	}
}

func (d *decoder) cell(column string) string {
	pos := d.idx[column]
	if pos >= len(d.record) {
		return ""
	}
	return d.record[pos]
}

func (d *decoder) text(column string) sql.NullString {
	cell := d.cell(column)
	if d.opts.missing(cell) {
		return sql.NullString{}
	}
	return core.Text(cell)
}

func (d *decoder) number(column string) sql.NullFloat64 {
	cell := d.cell(column)
	if d.opts.missing(cell) {
		return sql.NullFloat64{}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		if d.opts.coerces(column) {
			return sql.NullFloat64{}
		}
		if d.err == nil {
			d.err = &ValueError{Line: d.line, Column: column, Value: cell, Err: err}
		}
		return sql.NullFloat64{}
	}
	return core.Number(v)
}
