package detect

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDetector() Detector {
	return NewDetector(zerolog.Nop())
}

const twoJobCsv = `Name,Site A
Address,12 High Street
Post Code,AB1 2CD
Project Type,New Build
Phase,Trade,Labour Cost,Material Cost
Groundworks,Groundworker,£300.00,£150.00
Plumbing,Plumber,£200.00,£50.00

Name,Site B
Address,4 Mill Lane
Phase,Trade,Labour Cost,Material Cost
Electrical,Electrician,£300.00,£50.00
`

func TestDetect_TwoJobBlocks(t *testing.T) {
	result, err := newTestDetector().Detect(twoJobCsv)
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalJobs)
	require.Len(t, result.Jobs, 2)

	siteA := result.Jobs[0]
	assert.Equal(t, "Site A", siteA.Name)
	assert.Equal(t, "12 High Street", siteA.Address)
	assert.Equal(t, "AB1 2CD", siteA.PostCode)
	assert.Equal(t, "New Build", siteA.ProjectType)
	assert.Equal(t, []string{"Groundworks", "Plumbing"}, siteA.Phases)
	assert.Equal(t, 50000, siteA.TotalLabourCostPence)
	assert.Equal(t, 20000, siteA.TotalMaterialCostPence)
	assert.Equal(t, 2, siteA.ResourceCount)

	siteB := result.Jobs[1]
	assert.Equal(t, "Site B", siteB.Name)
	assert.Equal(t, []string{"Electrical"}, siteB.Phases)
	assert.Equal(t, 30000, siteB.TotalLabourCostPence)
	assert.Equal(t, 5000, siteB.TotalMaterialCostPence)
}

func TestDetect_EmptyInput(t *testing.T) {
	result, err := newTestDetector().Detect("")
	require.NoError(t, err, "empty input is a no-data result, not a failure")
	assert.Equal(t, 0, result.TotalJobs)
	assert.Empty(t, result.Jobs)
}

func TestDetect_WhitespaceOnlyInput(t *testing.T) {
	result, err := newTestDetector().Detect("\n\n   \n")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalJobs)
}

func TestDetect_Deterministic(t *testing.T) {
	d := newTestDetector()
	first, err := d.Detect(twoJobCsv)
	require.NoError(t, err)
	second, err := d.Detect(twoJobCsv)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDetect_CostConservation(t *testing.T) {
	result, err := newTestDetector().Detect(twoJobCsv)
	require.NoError(t, err)

	classified := 0
	perPhase := 0
	for _, job := range result.Jobs {
		classified += job.TotalLabourCostPence + job.TotalMaterialCostPence
		for _, pc := range job.PhaseCosts {
			perPhase += pc.LabourPence + pc.MaterialPence
		}
	}
	// 300+150+200+50+300+50 pounds of classified line items.
	assert.Equal(t, 105000, classified)
	assert.Equal(t, classified, perPhase, "phase breakdown must conserve the job totals")
}

func TestDetect_MalformedCostDegradesToZero(t *testing.T) {
	content := `Name,Site C
Phase,Labour Cost,Material Cost
Groundworks,not-a-number,£100.00
Roofing,£50.00,
`
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err, "a malformed row degrades totals, it does not fail the upload")
	require.Equal(t, 1, result.TotalJobs)

	job := result.Jobs[0]
	assert.Equal(t, 5000, job.TotalLabourCostPence)
	assert.Equal(t, 10000, job.TotalMaterialCostPence)
	assert.Equal(t, []string{"Groundworks", "Roofing"}, job.Phases)
	assert.Equal(t, 2, job.ResourceCount)
}

func TestDetect_CurrencyAndThousandsSeparators(t *testing.T) {
	content := `Name,Site D
Phase,Labour Cost,Material Cost
Groundworks,"£1,250.50",2000
Groundworks,€99.999,$0.5
`
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalJobs)

	job := result.Jobs[0]
	// 1250.50 + 100.00 (99.999 rounds half away from zero) = 135050p
	assert.Equal(t, 135050, job.TotalLabourCostPence)
	// 2000.00 + 0.50
	assert.Equal(t, 200050, job.TotalMaterialCostPence)
	assert.Equal(t, []string{"Groundworks"}, job.Phases, "repeated phases collapse to first occurrence")
}

func TestDetect_UncategorizedCostColumnExcludedFromTotals(t *testing.T) {
	content := `Name,Site E
Phase,Cost
Groundworks,£400.00
`
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalJobs)

	job := result.Jobs[0]
	assert.Equal(t, 0, job.TotalLabourCostPence)
	assert.Equal(t, 0, job.TotalMaterialCostPence)
	assert.Equal(t, 1, job.ResourceCount, "uncategorized lines still count as priced line items")
	assert.Equal(t, []string{"Groundworks"}, job.Phases)
}

func TestDetect_NamelessJunkBlockDiscarded(t *testing.T) {
	content := `Address,export banner junk
Exported by SiteTool v2,,,
` + twoJobCsv
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err)
	assert.Equal(t, 2, result.TotalJobs, "junk rows before the first job must not become a job")
	assert.Equal(t, "Site A", result.Jobs[0].Name)
}

func TestDetect_NoJobStartRowsFallsBackToSingleJob(t *testing.T) {
	content := `Phase,Trade,Labour Cost,Material Cost
Groundworks,Groundworker,£100.00,£20.00
Plumbing,Plumber,£80.00,£10.00
`
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalJobs)

	job := result.Jobs[0]
	assert.Empty(t, job.Name)
	assert.Equal(t, []string{"Groundworks", "Plumbing"}, job.Phases)
	assert.Equal(t, 18000, job.TotalLabourCostPence)
	assert.Equal(t, 3000, job.TotalMaterialCostPence)
}

func TestDetect_ColumnarMultiJobFormat(t *testing.T) {
	content := `Name,Address,Post Code,Project Type,Phase,Labour Cost,Material Cost
Site A,12 High Street,AB1 2CD,Extension,Groundworks,£250.00,£100.00
,,,,Plumbing,£150.00,£40.00
Site B,4 Mill Lane,ZZ9 9ZZ,Loft Conversion,Electrical,£300.00,£50.00
`
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err)
	require.Equal(t, 2, result.TotalJobs)

	siteA := result.Jobs[0]
	assert.Equal(t, "Site A", siteA.Name)
	assert.Equal(t, "12 High Street", siteA.Address)
	assert.Equal(t, "Extension", siteA.ProjectType)
	assert.Equal(t, []string{"Groundworks", "Plumbing"}, siteA.Phases)
	assert.Equal(t, 40000, siteA.TotalLabourCostPence)
	assert.Equal(t, 14000, siteA.TotalMaterialCostPence)

	siteB := result.Jobs[1]
	assert.Equal(t, "Site B", siteB.Name)
	assert.Equal(t, "ZZ9 9ZZ", siteB.PostCode)
	assert.Equal(t, 30000, siteB.TotalLabourCostPence)
	assert.Equal(t, 5000, siteB.TotalMaterialCostPence)
}

func TestDetect_JobWithNoResourceLinesIsValid(t *testing.T) {
	content := `Name,Empty Site
Address,Nowhere Lane
`
	result, err := newTestDetector().Detect(content)
	require.NoError(t, err)
	require.Equal(t, 1, result.TotalJobs)

	job := result.Jobs[0]
	assert.Equal(t, "Empty Site", job.Name)
	assert.Zero(t, job.TotalLabourCostPence)
	assert.Zero(t, job.TotalMaterialCostPence)
	assert.Empty(t, job.Phases)
	assert.Zero(t, job.ResourceCount)
}

func TestParseMoneyPence(t *testing.T) {
	cases := []struct {
		in    string
		pence int
		ok    bool
	}{
		{"£1,234.56", 123456, true},
		{"1234", 123400, true},
		{"0.5", 50, true},
		{"99.999", 10000, true},
		{"99.994", 9999, true},
		{"£ 12", 1200, true},
		{"-3.00", -300, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12.3x", 0, false},
	}
	for _, tc := range cases {
		pence, ok := parseMoneyPence(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.pence, pence, "input %q", tc.in)
		}
	}
}
