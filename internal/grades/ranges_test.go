package grades

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestDefaultRangesTileExactly(t *testing.T) {
	normalized, problems := ValidateRanges(DefaultRanges())
	require.Nil(t, problems)
	require.Equal(t, MinScore, normalized[0].Min)
	require.Equal(t, MaxScore, normalized[len(normalized)-1].EffectiveMax())
	for i := 0; i < len(normalized)-1; i++ {
		require.Equal(t, normalized[i].EffectiveMax()+1, normalized[i+1].Min,
			"ranges %q and %q must be adjacent", normalized[i].Grade, normalized[i+1].Grade)
	}
}

func TestValidateRangesNormalizes(t *testing.T) {
	normalized, problems := ValidateRanges([]Range{
		{Grade: " Pass ", Min: 50, Max: nil},
		{Grade: "Fail", Min: -3, Max: intPtr(49)},
	})
	require.Nil(t, problems)
	require.Equal(t, "Fail", normalized[0].Grade)
	require.Equal(t, 0, normalized[0].Min)
	require.Equal(t, "Pass", normalized[1].Grade)
	require.Equal(t, 100, normalized[1].EffectiveMax())
}

func TestValidateRangesReportsGap(t *testing.T) {
	_, problems := ValidateRanges([]Range{
		{Grade: "A", Min: 90, Max: intPtr(100)},
		{Grade: "B", Min: 0, Max: intPtr(85)},
	})
	require.Len(t, problems, 1)
	require.Contains(t, problems[0], "86-89")
}

func TestValidateRangesReportsOverlap(t *testing.T) {
	_, problems := ValidateRanges([]Range{
		{Grade: "A", Min: 80, Max: intPtr(100)},
		{Grade: "B", Min: 85, Max: intPtr(95)},
	})
	require.NotEmpty(t, problems)
	require.Contains(t, strings.Join(problems, "; "), `ranges "A" and "B" overlap`)
}

func TestValidateRangesAccumulatesAllProblems(t *testing.T) {
	_, problems := ValidateRanges([]Range{
		{Grade: "", Min: 5, Max: intPtr(40)},
		{Grade: "X", Min: 50, Max: intPtr(90)},
		{Grade: "X", Min: 95, Max: intPtr(98)},
	})
	// empty label, duplicate label, first min != 0, last max != 100, two gaps
	require.GreaterOrEqual(t, len(problems), 5)
}

func TestDetermineGradeDefaults(t *testing.T) {
	ranges := DefaultRanges()
	require.Equal(t, "A", DetermineGrade(92, ranges))
	require.Equal(t, "F", DetermineGrade(49, ranges))
	require.Equal(t, "A+", DetermineGrade(100, ranges))
	require.Equal(t, "F", DetermineGrade(0, ranges))
}

func TestDetermineGradeCoversEveryIntegerScore(t *testing.T) {
	ranges := DefaultRanges()
	for score := 0; score <= 100; score++ {
		first := DetermineGrade(float64(score), ranges)
		require.NotEmpty(t, first, "score %d must map to a grade", score)
		require.Equal(t, first, DetermineGrade(float64(score), ranges))
	}
}

func TestDetermineGradeRejectsOutOfDomain(t *testing.T) {
	ranges := DefaultRanges()
	require.Empty(t, DetermineGrade(-1, ranges))
	require.Empty(t, DetermineGrade(101, ranges))
	require.Empty(t, DetermineGrade(math.NaN(), ranges))
}

func TestStatusFromGrade(t *testing.T) {
	require.Equal(t, "lulus", StatusFromGrade("A"))
	require.Equal(t, "lulus", StatusFromGrade(" D "))
	require.Equal(t, "gagal", StatusFromGrade("F"))
	require.Equal(t, "gagal", StatusFromGrade(""))
	require.Equal(t, "gagal", StatusFromGrade("Z"))
}
