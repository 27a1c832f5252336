package grading

import (
	"math"
	"sort"
)

// WeightConfig maps a category to the share (0-100) of the course grade it
// carries. It is sparse: categories without an entry fall back to the mean
// weight_percentage of their graded assignments.
type WeightConfig map[AssignmentType]float64

// WeightFor returns the configured weight for the category, or fallback when
// the category has no override.
func (w WeightConfig) WeightFor(category AssignmentType, fallback float64) float64 {
	if weight, ok := w[category]; ok {
		return weight
	}
	return fallback
}

// CategoryScore aggregates the graded assignments of one category.
type CategoryScore struct {
	Earned        float64 `json:"earned"`
	Total         float64 `json:"total"`
	Percentage    float64 `json:"percentage"`
	Weight        float64 `json:"weight"`
	WeightedScore float64 `json:"weighted_score"`
}

// GradeBreakdown is the result of a course grade calculation.
type GradeBreakdown struct {
	Categories      map[AssignmentType]CategoryScore `json:"categories"`
	CalculatedGrade float64                          `json:"calculated_grade"`
	TotalWeightUsed float64                          `json:"total_weight_used"`
	MissingWeight   float64                          `json:"missing_weight"`
}

// HasGradedWork reports whether any category contributed to the grade.
func (b GradeBreakdown) HasGradedWork() bool {
	return len(b.Categories) > 0
}

type categoryAccumulator struct {
	earned     float64
	total      float64
	weightSum  float64
	gradedSeen int
}

// Calculate computes a course grade from its assignments. Ungraded
// assignments are ignored and categories without graded work are omitted.
// The grade is normalised by the weight actually used, so it stays a valid
// percentage even when the configured weights do not sum to 100.
func Calculate(assignments []Assignment, weights WeightConfig) GradeBreakdown {
	accumulators := make(map[AssignmentType]*categoryAccumulator)
	for _, assignment := range assignments {
		if !assignment.Graded() {
			continue
		}
		acc, ok := accumulators[assignment.Type]
		if !ok {
			acc = &categoryAccumulator{}
			accumulators[assignment.Type] = acc
		}
		acc.earned += *assignment.EarnedPoints
		acc.total += assignment.TotalPoints
		acc.weightSum += assignment.WeightPercentage
		acc.gradedSeen++
	}

	// fixed order keeps float sums identical across calls
	categories := make([]AssignmentType, 0, len(accumulators))
	for category := range accumulators {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	breakdown := GradeBreakdown{Categories: make(map[AssignmentType]CategoryScore, len(categories))}
	var scoreSum float64
	for _, category := range categories {
		acc := accumulators[category]
		var percentage float64
		if acc.total > 0 {
			percentage = acc.earned / acc.total * 100
		}
		weight := weights.WeightFor(category, acc.weightSum/float64(acc.gradedSeen))
		score := CategoryScore{
			Earned:        acc.earned,
			Total:         acc.total,
			Percentage:    percentage,
			Weight:        weight,
			WeightedScore: percentage * weight / 100,
		}
		breakdown.Categories[category] = score
		breakdown.TotalWeightUsed += weight
		scoreSum += score.WeightedScore
	}

	if breakdown.TotalWeightUsed > 0 {
		breakdown.CalculatedGrade = clamp(scoreSum/breakdown.TotalWeightUsed*100, 0, 100)
	}
	breakdown.MissingWeight = math.Max(0, 100-breakdown.TotalWeightUsed)
	return breakdown
}

// LevelBoost lifts a calculated course grade for display: AP +5, Honors and
// dual enrollment +2.5, capped at 100. It is unrelated to LevelAddon, which
// only applies to weighted GPA points.
func LevelBoost(grade float64, level CourseLevel) float64 {
	var boost float64
	switch level {
	case LevelAP:
		boost = 5
	case LevelHonors, LevelDualEnrollment:
		boost = 2.5
	}
	return math.Min(100, grade+boost)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
