package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/loanlens/internal/analysis"
	"github.com/leapstack-labs/loanlens/internal/stats"
)

// WriteSummary writes the report figures to path as YAML.
// Undefined values are written as 0.
func WriteSummary(path string, f analysis.Figures) error {
	data, err := MarshalSummary(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

// MarshalSummary encodes the report figures as YAML.
func MarshalSummary(f analysis.Figures) ([]byte, error) {
	for _, v := range []*float64{
		&f.ApprovalRate,
		&f.MaleApproval,
		&f.FemaleApproval,
		&f.GraduateApproval,
		&f.NotGraduateApproval,
		&f.GoodCreditApproval,
		&f.BadCreditApproval,
		&f.ApprovedLoanAmount,
		&f.RejectedLoanAmount,
		&f.ApprovedTotalIncome,
		&f.RejectedTotalIncome,
	} {
		*v = stats.OrZero(*v)
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return data, nil
}
