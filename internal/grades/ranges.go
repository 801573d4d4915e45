// Package grades maintains the score partition used to derive letter grades
// and pass/fail status from exam scores. The partition is an ordered set of
// inclusive ranges that must tile [0,100] exactly: no gaps, no overlaps.
package grades

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Bounds of the score domain.
const (
	MinScore = 0
	MaxScore = 100
)

// Range is one candidate bucket of the partition. A nil Max means the bucket
// extends to MaxScore.
type Range struct {
	Grade string `json:"grade"`
	Min   int    `json:"min"`
	Max   *int   `json:"max"`
}

// EffectiveMax resolves the nullable upper bound.
func (r Range) EffectiveMax() int {
	if r.Max == nil {
		return MaxScore
	}
	return *r.Max
}

// passingGrades is the fixed set of grades that count as a pass. Everything
// outside the set, including unknown labels, fails.
var passingGrades = map[string]struct{}{
	"A+": {}, "A": {}, "A-": {},
	"B+": {}, "B": {}, "B-": {},
	"C+": {}, "C": {}, "C-": {},
	"D": {},
}

// DefaultRanges returns the built-in 11-bucket partition used until an
// administrator saves a custom one.
func DefaultRanges() []Range {
	bound := func(v int) *int { return &v }
	return []Range{
		{Grade: "F", Min: 0, Max: bound(49)},
		{Grade: "D", Min: 50, Max: bound(54)},
		{Grade: "C-", Min: 55, Max: bound(59)},
		{Grade: "C", Min: 60, Max: bound(64)},
		{Grade: "C+", Min: 65, Max: bound(69)},
		{Grade: "B-", Min: 70, Max: bound(74)},
		{Grade: "B", Min: 75, Max: bound(79)},
		{Grade: "B+", Min: 80, Max: bound(84)},
		{Grade: "A-", Min: 85, Max: bound(89)},
		{Grade: "A", Min: 90, Max: bound(94)},
		{Grade: "A+", Min: 95, Max: nil},
	}
}

// ValidateRanges normalizes a candidate partition and checks that it tiles
// [0,100] exactly. It accumulates every violation found so callers can show a
// complete error list. On success it returns the normalized set sorted by Min
// ascending and a nil problem slice. The function is pure.
func ValidateRanges(candidates []Range) ([]Range, []string) {
	var problems []string

	if len(candidates) == 0 {
		return nil, []string{"at least one grade range is required"}
	}

	normalized := make([]Range, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for i, candidate := range candidates {
		grade := strings.TrimSpace(candidate.Grade)
		if grade == "" {
			problems = append(problems, fmt.Sprintf("range %d: grade label must not be empty", i+1))
		} else if _, dup := seen[grade]; dup {
			problems = append(problems, fmt.Sprintf("grade %q appears more than once", grade))
		} else {
			seen[grade] = struct{}{}
		}

		min := clampScore(candidate.Min)
		max := MaxScore
		if candidate.Max != nil {
			max = clampScore(*candidate.Max)
		}
		if min > max {
			problems = append(problems, fmt.Sprintf("grade %q: min %d exceeds max %d", grade, min, max))
		}

		effective := max
		normalized = append(normalized, Range{Grade: grade, Min: min, Max: &effective})
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Min < normalized[j].Min
	})

	if first := normalized[0]; first.Min != MinScore {
		problems = append(problems, fmt.Sprintf("lowest range %q must start at %d, got %d", first.Grade, MinScore, first.Min))
	}
	if last := normalized[len(normalized)-1]; last.EffectiveMax() != MaxScore {
		problems = append(problems, fmt.Sprintf("highest range %q must end at %d, got %d", last.Grade, MaxScore, last.EffectiveMax()))
	}

	for i := 0; i < len(normalized)-1; i++ {
		current, next := normalized[i], normalized[i+1]
		switch {
		case current.EffectiveMax()+1 < next.Min:
			problems = append(problems, fmt.Sprintf("gap between %q and %q: scores %d-%d are not covered",
				current.Grade, next.Grade, current.EffectiveMax()+1, next.Min-1))
		case current.EffectiveMax() >= next.Min:
			problems = append(problems, fmt.Sprintf("ranges %q and %q overlap between %d and %d",
				current.Grade, next.Grade, next.Min, minInt(current.EffectiveMax(), next.EffectiveMax())))
		}
	}

	if len(problems) > 0 {
		return nil, problems
	}
	return normalized, nil
}

// DetermineGrade maps a score onto the partition and returns the matching
// grade label. Scores outside [0,100] or NaN yield the empty string; this is
// a lookup, not a validating operation.
func DetermineGrade(score float64, ranges []Range) string {
	if math.IsNaN(score) || score < MinScore || score > MaxScore {
		return ""
	}
	for _, r := range ranges {
		if score >= float64(r.Min) && score <= float64(r.EffectiveMax()) {
			return strings.TrimSpace(r.Grade)
		}
	}
	return ""
}

// StatusFromGrade maps a grade label to lulus/gagal. Unknown or empty grades
// fail; an unrecognised grade is never silently treated as a pass.
func StatusFromGrade(grade string) string {
	if _, ok := passingGrades[strings.TrimSpace(grade)]; ok {
		return "lulus"
	}
	return "gagal"
}

func clampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
