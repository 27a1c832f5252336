package grading

// RiskTier classifies how likely admission to a university is.
type RiskTier string

const (
	RiskSafety    RiskTier = "Safety"
	RiskTarget    RiskTier = "Target"
	RiskReach     RiskTier = "Reach"
	RiskHighReach RiskTier = "High Reach"
)

// Defaults applied when a university is missing a statistic.
const (
	DefaultAvgGPA         = 3.5
	DefaultAvgSAT         = 1200.0
	DefaultAcceptanceRate = 0.5
)

// UniversityStats carries the published averages of a university. Nil fields
// fall back to the package defaults.
type UniversityStats struct {
	AvgGPA         *float64 `json:"avg_gpa"`
	AvgSAT         *float64 `json:"avg_sat"`
	AcceptanceRate *float64 `json:"acceptance_rate"`
}

// RiskAssessment explains how a tier was reached.
type RiskAssessment struct {
	Tier             RiskTier `json:"tier"`
	Score            int      `json:"score"`
	GPAScore         int      `json:"gpa_score"`
	SATScore         int      `json:"sat_score"`
	SelectivityScore int      `json:"selectivity_score"`
	SATConsidered    bool     `json:"sat_considered"`
}

// EstimateRisk classifies a university for a student with the given 4.0-scale
// GPA and optional best SAT score.
func EstimateRisk(userGPA float64, userSAT *float64, uni UniversityStats) RiskTier {
	return EstimateRiskDetailed(userGPA, userSAT, uni).Tier
}

// EstimateRiskDetailed is EstimateRisk with the per-term scores. A missing SAT
// score contributes nothing rather than a penalty.
func EstimateRiskDetailed(userGPA float64, userSAT *float64, uni UniversityStats) RiskAssessment {
	assessment := RiskAssessment{
		GPAScore:         gpaTerm(userGPA, valueOr(uni.AvgGPA, DefaultAvgGPA)),
		SelectivityScore: selectivityTerm(valueOr(uni.AcceptanceRate, DefaultAcceptanceRate)),
	}
	if userSAT != nil {
		assessment.SATConsidered = true
		assessment.SATScore = satTerm(*userSAT, valueOr(uni.AvgSAT, DefaultAvgSAT))
	}
	assessment.Score = assessment.GPAScore + assessment.SATScore + assessment.SelectivityScore
	assessment.Tier = tierFor(assessment.Score)
	return assessment
}

func gpaTerm(userGPA, avgGPA float64) int {
	switch {
	case userGPA >= avgGPA+0.2:
		return 2
	case userGPA >= avgGPA-0.1:
		return 1
	default:
		return -2
	}
}

func satTerm(userSAT, avgSAT float64) int {
	switch {
	case userSAT >= avgSAT+50:
		return 2
	case userSAT >= avgSAT-30:
		return 1
	default:
		return -2
	}
}

func selectivityTerm(acceptanceRate float64) int {
	switch {
	case acceptanceRate < 0.15:
		return -2
	case acceptanceRate < 0.30:
		return -1
	default:
		return 0
	}
}

func tierFor(score int) RiskTier {
	switch {
	case score >= 3:
		return RiskSafety
	case score >= 0:
		return RiskTarget
	case score >= -2:
		return RiskReach
	default:
		return RiskHighReach
	}
}

func valueOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}
