package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// InsertError reports the row that made ReplaceLoans roll back.
type InsertError struct {
	// Row is the 1-based position of the row in the batch.
	Row    int
	LoanID string
	Err    error
}

func (e *InsertError) Error() string {
	id := e.LoanID
	if id == "" {
		id = "<null>"
	}
	return fmt.Sprintf("failed to insert row %d (Loan_ID %s): %v", e.Row, id, e.Err)
}

func (e *InsertError) Unwrap() error {
	return e.Err
}

// ReplaceLoans deletes every row of the loan table and inserts apps, all
// inside one transaction. Any failure rolls the transaction back, leaving
// the table as it was before the call.
func (b *BaseSQLAdapter) ReplaceLoans(ctx context.Context, apps []core.LoanApplication) (n int, err error) {
	if b.DB == nil {
		return 0, ErrNotConnected
	}
	log := b.logger()

	tx, err := b.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rollback failed", slog.String("error", rbErr.Error()))
			return
		}
		log.Debug("transaction rolled back")
	}()

	del, args, err := squirrel.Delete(core.LoanTable).PlaceholderFormat(b.placeholder()).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete: %w", err)
	}
	if _, err = tx.ExecContext(ctx, del, args...); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", core.LoanTable, err)
	}

	for i, app := range apps {
		query, args, buildErr := InsertQuery(app, b.placeholder())
		if buildErr != nil {
			err = &InsertError{Row: i + 1, LoanID: app.LoanID.String, Err: buildErr}
			return 0, err
		}
		if _, execErr := tx.ExecContext(ctx, query, args...); execErr != nil {
			err = &InsertError{Row: i + 1, LoanID: app.LoanID.String, Err: execErr}
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}

	log.Debug("replaced loan table", slog.Int("rows", len(apps)))
	return len(apps), nil
}

// InsertQuery builds the INSERT statement for one application.
func InsertQuery(app core.LoanApplication, ph squirrel.PlaceholderFormat) (string, []any, error) {
	return squirrel.Insert(core.LoanTable).
		Columns(core.Columns...).
		Values(RowValues(app)...).
		PlaceholderFormat(ph).
		ToSql()
}

// RowValues converts an application to the column types of the loan
// table, in core.Columns order. Loan_Amount_Term and Credit_History are
// truncated to integers; nulls become nil.
func RowValues(app core.LoanApplication) []any {
	return []any{
		textValue(app.LoanID),
		textValue(app.Gender),
		textValue(app.Married),
		textValue(app.Dependents),
		textValue(app.Education),
		textValue(app.SelfEmployed),
		floatValue(app.ApplicantIncome),
		floatValue(app.CoapplicantIncome),
		floatValue(app.LoanAmount),
		intValue(app.LoanAmountTerm),
		intValue(app.CreditHistory),
		textValue(app.PropertyArea),
		textValue(app.LoanStatus),
	}
}

func textValue(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}

func floatValue(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func intValue(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return int64(v.Float64)
}
