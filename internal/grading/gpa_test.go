package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 {
	return &v
}

func TestGPAMixedLevels(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 11, Level: LevelRegular, Grade: pct(95)},
		{ID: "c2", Year: 11, Level: LevelAP, Grade: pct(87)},
	}

	// 4.0 and 3.3 unweighted, 4.0 and 4.3 weighted
	assert.Equal(t, 3.65, UnweightedGPA(courses))
	assert.Equal(t, 4.15, WeightedGPA(courses))
}

func TestGPAEmptyInput(t *testing.T) {
	assert.Equal(t, 0.0, UnweightedGPA(nil))
	assert.Equal(t, 0.0, WeightedGPA(nil))
	assert.Equal(t, 0.0, StatsGPA(nil))

	trend := GPATrend(nil)
	require.NotNil(t, trend)
	assert.Empty(t, trend)
}

func TestGPAIgnoresUngradedCourses(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 9, Level: LevelAP},
		{ID: "c2", Year: 9, Level: LevelHonors},
	}
	assert.Equal(t, 0.0, UnweightedGPA(courses))
	assert.Equal(t, 0.0, WeightedGPA(courses))

	courses = append(courses, Course{ID: "c3", Year: 9, Level: LevelRegular, Grade: pct(88)})
	assert.Equal(t, 3.3, UnweightedGPA(courses))
	assert.Equal(t, 3.3, WeightedGPA(courses))
}

func TestWeightedGPANoBoostForFailingGrade(t *testing.T) {
	courses := []Course{{ID: "c1", Year: 10, Level: LevelAP, Grade: pct(50)}}

	assert.Equal(t, 0.0, WeightedGPA(courses))
}

func TestWeightedGPACapsAtFive(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 12, Level: LevelIB, Grade: pct(99)},
		{ID: "c2", Year: 12, Level: LevelAP, Grade: pct(93)},
	}

	assert.Equal(t, 5.0, WeightedGPA(courses))
	assert.Equal(t, 4.0, UnweightedGPA(courses))
}

func TestLevelAddon(t *testing.T) {
	assert.Equal(t, 1.0, LevelAddon(LevelAP))
	assert.Equal(t, 1.0, LevelAddon(LevelIB))
	assert.Equal(t, 0.5, LevelAddon(LevelHonors))
	assert.Equal(t, 0.5, LevelAddon(LevelDualEnrollment))
	assert.Equal(t, 0.0, LevelAddon(LevelRegular))
	assert.Equal(t, 0.0, LevelAddon(CourseLevel("Unknown")))
}

func TestWeightedNeverBelowUnweightedForRigorousCourses(t *testing.T) {
	levels := []CourseLevel{LevelAP, LevelIB, LevelHonors, LevelDualEnrollment}
	for _, level := range levels {
		for grade := 65.0; grade <= 100; grade += 2.5 {
			courses := []Course{
				{ID: "a", Year: 10, Level: level, Grade: pct(grade)},
				{ID: "b", Year: 11, Level: LevelAP, Grade: pct(100 - (grade-65)/2)},
			}
			assert.GreaterOrEqual(t, WeightedGPA(courses), UnweightedGPA(courses), "level %s grade %v", level, grade)
		}
	}
}

func TestGPATrendSortedByYear(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 11, Level: LevelAP, Grade: pct(87)},
		{ID: "c2", Year: 9, Level: LevelRegular, Grade: pct(95)},
		{ID: "c3", Year: 10, Level: LevelHonors, Grade: pct(90)},
		{ID: "c4", Year: 11, Level: LevelRegular, Grade: pct(95)},
		{ID: "c5", Year: 12, Level: LevelRegular},
	}

	trend := GPATrend(courses)

	assert.Equal(t, []YearGPA{
		{Year: 9, GPA: 4.0},
		{Year: 10, GPA: 4.2},
		{Year: 11, GPA: 4.15},
		{Year: 12, GPA: 0},
	}, trend)
}

func TestGPATrendToleratesCalendarYears(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 2024, Level: LevelRegular, Grade: pct(80)},
		{ID: "c2", Year: 2023, Level: LevelRegular, Grade: pct(70)},
	}

	trend := GPATrend(courses)

	require.Len(t, trend, 2)
	assert.Equal(t, 2023, trend[0].Year)
	assert.Equal(t, 2024, trend[1].Year)
}

func TestStatsGPAUsesCoarseTable(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 11, Level: LevelRegular, Grade: pct(78)},
		{ID: "c2", Year: 11, Level: LevelAP, Grade: pct(62)},
	}

	assert.Equal(t, 1.5, StatsGPA(courses))
	assert.Equal(t, 1.15, UnweightedGPA(courses))
}

func TestGPAIsIdempotent(t *testing.T) {
	courses := []Course{
		{ID: "c1", Year: 11, Level: LevelAP, Grade: pct(91.5)},
		{ID: "c2", Year: 10, Level: LevelHonors, Grade: pct(84)},
		{ID: "c3", Year: 9, Level: LevelRegular, Grade: pct(76)},
	}

	assert.Equal(t, WeightedGPA(courses), WeightedGPA(courses))
	assert.Equal(t, UnweightedGPA(courses), UnweightedGPA(courses))
	assert.Equal(t, GPATrend(courses), GPATrend(courses))
}
