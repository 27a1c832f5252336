package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func stat(v float64) *float64 {
	return &v
}

func TestEstimateRiskSelectiveUniversity(t *testing.T) {
	uni := UniversityStats{AvgGPA: stat(3.5), AvgSAT: stat(1400), AcceptanceRate: stat(0.10)}

	assessment := EstimateRiskDetailed(3.9, stat(1500), uni)

	assert.Equal(t, 2, assessment.GPAScore)
	assert.Equal(t, 2, assessment.SATScore)
	assert.Equal(t, -2, assessment.SelectivityScore)
	assert.Equal(t, 2, assessment.Score)
	assert.True(t, assessment.SATConsidered)
	assert.Equal(t, RiskTarget, assessment.Tier)
	assert.Equal(t, RiskTarget, EstimateRisk(3.9, stat(1500), uni))
}

func TestEstimateRiskDefaultsWithoutSAT(t *testing.T) {
	assessment := EstimateRiskDetailed(3.5, nil, UniversityStats{})

	assert.Equal(t, 1, assessment.GPAScore)
	assert.Equal(t, 0, assessment.SATScore)
	assert.False(t, assessment.SATConsidered)
	assert.Equal(t, 0, assessment.SelectivityScore)
	assert.Equal(t, RiskTarget, assessment.Tier)
}

func TestEstimateRiskTiers(t *testing.T) {
	cases := []struct {
		name string
		gpa  float64
		sat  *float64
		uni  UniversityStats
		want RiskTier
	}{
		{"strong applicant open admission", 4.0, stat(1500), UniversityStats{AvgGPA: stat(3.3), AvgSAT: stat(1200), AcceptanceRate: stat(0.7)}, RiskSafety},
		{"near average", 3.45, stat(1180), UniversityStats{AvgGPA: stat(3.5), AvgSAT: stat(1200), AcceptanceRate: stat(0.5)}, RiskTarget},
		{"below gpa moderately selective", 3.2, stat(1350), UniversityStats{AvgGPA: stat(3.6), AvgSAT: stat(1330), AcceptanceRate: stat(0.25)}, RiskReach},
		{"below everywhere highly selective", 3.0, stat(1200), UniversityStats{AvgGPA: stat(3.9), AvgSAT: stat(1500), AcceptanceRate: stat(0.05)}, RiskHighReach},
		{"below gpa no sat", 3.0, nil, UniversityStats{AvgGPA: stat(3.8), AcceptanceRate: stat(0.2)}, RiskHighReach},
		{"sat helps near-average gpa", 3.45, stat(1300), UniversityStats{}, RiskSafety},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EstimateRisk(tc.gpa, tc.sat, tc.uni))
		})
	}
}

func TestSelectivityTermBoundaries(t *testing.T) {
	assert.Equal(t, -2, selectivityTerm(0.1499))
	assert.Equal(t, -1, selectivityTerm(0.15))
	assert.Equal(t, -1, selectivityTerm(0.2999))
	assert.Equal(t, 0, selectivityTerm(0.30))
}

func TestSATTermBoundaries(t *testing.T) {
	assert.Equal(t, 2, satTerm(1250, 1200))
	assert.Equal(t, 1, satTerm(1249, 1200))
	assert.Equal(t, 1, satTerm(1170, 1200))
	assert.Equal(t, -2, satTerm(1169, 1200))
}

func TestTierForBoundaries(t *testing.T) {
	assert.Equal(t, RiskSafety, tierFor(3))
	assert.Equal(t, RiskTarget, tierFor(2))
	assert.Equal(t, RiskTarget, tierFor(0))
	assert.Equal(t, RiskReach, tierFor(-1))
	assert.Equal(t, RiskReach, tierFor(-2))
	assert.Equal(t, RiskHighReach, tierFor(-3))
}
