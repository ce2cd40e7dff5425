package analysis

import (
	"fmt"
	"math"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

// Figures are the values substituted into the text report.
// NaN marks an undefined statistic.
type Figures struct {
	Total        int     `yaml:"total_applications"`
	Approved     int     `yaml:"approved"`
	Rejected     int     `yaml:"rejected"`
	ApprovalRate float64 `yaml:"approval_rate"`

	MaleApproval   float64 `yaml:"male_approval_rate"`
	FemaleApproval float64 `yaml:"female_approval_rate"`

	GraduateApproval    float64 `yaml:"graduate_approval_rate"`
	NotGraduateApproval float64 `yaml:"not_graduate_approval_rate"`

	GoodCreditApproval float64 `yaml:"good_credit_approval_rate"`
	BadCreditApproval  float64 `yaml:"bad_credit_approval_rate"`

	ApprovedLoanAmount float64 `yaml:"approved_avg_loan_amount"`
	RejectedLoanAmount float64 `yaml:"rejected_avg_loan_amount"`

	ApprovedTotalIncome float64 `yaml:"approved_avg_total_income"`
	RejectedTotalIncome float64 `yaml:"rejected_avg_total_income"`
}

// Result holds every aggregation of one analysis run.
type Result struct {
	Observations []Observation

	StatusCounts []Count
	Descriptions []Description

	Demographics []*CrossTab

	Income       []ColumnSummary
	SelfEmployed *CrossTab

	LoanAmount         ColumnSummary
	LoanAmountCategory *CrossTab

	CreditStatus  *CrossTab
	CreditHistory *CrossTab
	PropertyArea  *CrossTab

	Figures Figures
}

// Crosstab columns and summarized columns, in report order.
var (
	DemographicColumns = []string{core.ColGender, core.ColEducation, core.ColMarried, core.ColDependents}
	DescribedColumns   = []string{core.ColApplicantIncome, core.ColCoapplicantIncome, core.ColLoanAmount}
	IncomeColumns      = []string{core.ColApplicantIncome, core.ColCoapplicantIncome, ColTotalIncome}
)

// Report category values.
const (
	Male        = "Male"
	Female      = "Female"
	Graduate    = "Graduate"
	NotGraduate = "Not Graduate"
)

// Analyze runs the fixed aggregation sequence over a cleaned dataset.
func Analyze(apps []core.LoanApplication) (*Result, error) {
	obs := Observe(apps)
	res := &Result{Observations: obs}

	var err error
	if res.StatusCounts, err = ValueCounts(obs, core.ColLoanStatus); err != nil {
		return nil, err
	}
	for _, col := range DescribedColumns {
		d, err := Describe(obs, col)
		if err != nil {
			return nil, err
		}
		res.Descriptions = append(res.Descriptions, d)
	}

	for _, col := range DemographicColumns {
		ct, err := CrossTabulate(obs, col)
		if err != nil {
			return nil, err
		}
		res.Demographics = append(res.Demographics, ct)
	}

	for _, col := range IncomeColumns {
		s, err := GroupByStatus(obs, col)
		if err != nil {
			return nil, err
		}
		res.Income = append(res.Income, s)
	}

	tabs := []struct {
		column string
		dst    **CrossTab
	}{
		{core.ColSelfEmployed, &res.SelfEmployed},
		{ColLoanAmountCategory, &res.LoanAmountCategory},
		{ColCreditStatus, &res.CreditStatus},
		{core.ColCreditHistory, &res.CreditHistory},
		{core.ColPropertyArea, &res.PropertyArea},
	}
	for _, tab := range tabs {
		if *tab.dst, err = CrossTabulate(obs, tab.column); err != nil {
			return nil, err
		}
	}

	if res.LoanAmount, err = GroupByStatus(obs, core.ColLoanAmount); err != nil {
		return nil, err
	}

	if res.Figures, err = res.figures(); err != nil {
		return nil, err
	}
	return res, nil
}

// Demographic returns the cross-tab built for column, or nil.
func (r *Result) Demographic(column string) *CrossTab {
	for _, ct := range r.Demographics {
		if ct.Column == column {
			return ct
		}
	}
	return nil
}

func (r *Result) figures() (Figures, error) {
	f := Figures{Total: len(r.Observations)}
	for _, o := range r.Observations {
		switch {
		case o.IsApproved():
			f.Approved++
		case o.IsRejected():
			f.Rejected++
		}
	}
	f.ApprovalRate = math.NaN()
	if f.Total > 0 {
		f.ApprovalRate = float64(f.Approved) / float64(f.Total) * 100
	}

	gender := r.Demographic(core.ColGender)
	education := r.Demographic(core.ColEducation)
	if gender == nil || education == nil {
		return Figures{}, fmt.Errorf("demographic cross-tabs missing from result")
	}
	f.MaleApproval = gender.ApprovalRate(Male)
	f.FemaleApproval = gender.ApprovalRate(Female)
	f.GraduateApproval = education.ApprovalRate(Graduate)
	f.NotGraduateApproval = education.ApprovalRate(NotGraduate)
	f.GoodCreditApproval = r.CreditHistory.ApprovalRate("1")
	f.BadCreditApproval = r.CreditHistory.ApprovalRate("0")

	means := []struct {
		column string
		status string
		dst    *float64
	}{
		{core.ColLoanAmount, core.StatusApproved, &f.ApprovedLoanAmount},
		{core.ColLoanAmount, core.StatusRejected, &f.RejectedLoanAmount},
		{ColTotalIncome, core.StatusApproved, &f.ApprovedTotalIncome},
		{ColTotalIncome, core.StatusRejected, &f.RejectedTotalIncome},
	}
	for _, m := range means {
		v, err := MeanWhere(r.Observations, m.column, m.status)
		if err != nil {
			return Figures{}, err
		}
		*m.dst = v
	}
	return f, nil
}
