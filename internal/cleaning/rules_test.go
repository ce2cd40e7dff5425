package cleaning

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/loanlens/pkg/core"
)

func loan(id string, amount sql.NullFloat64) core.LoanApplication {
	return core.LoanApplication{
		LoanID:         core.Text(id),
		Gender:         core.Text("Female"),
		Dependents:     core.Text("1"),
		SelfEmployed:   core.Text("Yes"),
		LoanAmount:     amount,
		LoanAmountTerm: core.Number(180),
		CreditHistory:  core.Number(0),
		LoanStatus:     core.Text("Y"),
	}
}

func TestApply_ImputesEveryRule(t *testing.T) {
	apps := []core.LoanApplication{
		{LoanID: core.Text("LP1"), LoanAmount: core.Number(100)},
		{LoanID: core.Text("LP2"), LoanAmount: core.Number(200)},
		{LoanID: core.Text("LP3")},
	}

	cleaned, err := Apply(apps)
	require.NoError(t, err)
	require.Len(t, cleaned, 3)

	got := cleaned[2]
	assert.Equal(t, core.Text("No"), got.SelfEmployed)
	assert.Equal(t, core.Number(150), got.LoanAmount)
	assert.Equal(t, core.Number(360), got.LoanAmountTerm)
	assert.Equal(t, core.Number(1), got.CreditHistory)
	assert.Equal(t, core.Text("Male"), got.Gender)
	assert.Equal(t, core.Text("0"), got.Dependents)
	assert.Zero(t, MissingImputed(cleaned))
}

func TestApply_KeepsObservedValues(t *testing.T) {
	apps := []core.LoanApplication{loan("LP1", core.Number(42))}

	cleaned, err := Apply(apps)
	require.NoError(t, err)
	assert.Equal(t, apps, cleaned)
}

func TestApply_MedianUsesOriginalValuesOnly(t *testing.T) {
	// Observed: 10, 20, 90 -> median 20. Three missing rows must all get 20,
	// not a median drifting as imputed values are added.
	apps := []core.LoanApplication{
		loan("LP1", core.Number(10)),
		loan("LP2", sql.NullFloat64{}),
		loan("LP3", core.Number(90)),
		loan("LP4", sql.NullFloat64{}),
		loan("LP5", core.Number(20)),
		loan("LP6", sql.NullFloat64{}),
	}

	cleaned, err := Apply(apps)
	require.NoError(t, err)

	for _, i := range []int{1, 3, 5} {
		assert.Equal(t, core.Number(20), cleaned[i].LoanAmount, "row %d", i)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	apps := []core.LoanApplication{
		{LoanID: core.Text("LP1"), LoanAmount: core.Number(100)},
		{LoanID: core.Text("LP2")},
	}

	_, err := Apply(apps)
	require.NoError(t, err)

	assert.False(t, apps[1].LoanAmount.Valid)
	assert.False(t, apps[1].Gender.Valid)
}

func TestApply_Idempotent(t *testing.T) {
	apps := []core.LoanApplication{
		{LoanID: core.Text("LP1"), LoanAmount: core.Number(100), Gender: core.Text("Female")},
		{LoanID: core.Text("LP2")},
		{LoanID: core.Text("LP3"), LoanAmount: core.Number(300), Dependents: core.Text("3+")},
	}

	once, err := Apply(apps)
	require.NoError(t, err)
	twice, err := Apply(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestApply_CardinalityPreserved(t *testing.T) {
	apps := make([]core.LoanApplication, 25)
	for i := range apps {
		apps[i].LoanAmount = core.Number(float64(i))
	}

	cleaned, err := Apply(apps)
	require.NoError(t, err)
	assert.Len(t, cleaned, len(apps))
}

func TestApply_NoObservedLoanAmount(t *testing.T) {
	apps := []core.LoanApplication{{LoanID: core.Text("LP1")}}

	_, err := Apply(apps)
	assert.ErrorIs(t, err, ErrNoLoanAmount)
}

func TestApply_EmptyDataset(t *testing.T) {
	cleaned, err := Apply(nil)
	require.NoError(t, err)
	assert.Empty(t, cleaned)
}

func TestApply_GenderScenario(t *testing.T) {
	apps := []core.LoanApplication{
		{LoanID: core.Text("LP1"), Gender: core.Text("Male"), LoanAmount: core.Number(1), LoanStatus: core.Text("Y")},
		{LoanID: core.Text("LP2"), LoanAmount: core.Number(1), LoanStatus: core.Text("N")},
		{LoanID: core.Text("LP3"), Gender: core.Text("Female"), LoanAmount: core.Number(1), LoanStatus: core.Text("Y")},
	}

	cleaned, err := Apply(apps)
	require.NoError(t, err)
	assert.Equal(t, core.Text("Male"), cleaned[1].Gender)
}
