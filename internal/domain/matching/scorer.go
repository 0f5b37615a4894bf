package matching

import (
	"math"
	"strings"
)

type Profile struct {
	ProcedureType       string
	ProcedureTypes      []string
	ProcedureDetails    string
	AgeRange            string
	Gender              string
	ActivityLevel       string
	RecoveryGoals       []string
	ComplicatingFactors []string
	LifestyleContext    []string
}

type BreakdownItem struct {
	Attribute string
	Matched   bool
	Weight    float64
}

type Result struct {
	Score     int
	Breakdown []BreakdownItem
}

// Weights must sum to 100; Total is used as the denominator so the
// invariant stays testable without hardcoding the sum.
type Weights struct {
	ProcedureType       float64
	ProcedureDetails    float64
	AgeRange            float64
	Gender              float64
	ActivityLevel       float64
	RecoveryGoals       float64
	ComplicatingFactors float64
	LifestyleContext    float64
}

func DefaultWeights() Weights {
	return Weights{
		ProcedureType:       30,
		ProcedureDetails:    10,
		AgeRange:            10,
		Gender:              10,
		ActivityLevel:       15,
		RecoveryGoals:       15,
		ComplicatingFactors: 5,
		LifestyleContext:    5,
	}
}

func (w Weights) Total() float64 {
	return w.ProcedureType + w.ProcedureDetails + w.AgeRange + w.Gender +
		w.ActivityLevel + w.RecoveryGoals + w.ComplicatingFactors + w.LifestyleContext
}

var ageRangeOrder = []string{"teens", "20s", "30s", "40s", "50s", "60s", "70s+"}

const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

func Score(seeker, guide Profile) Result {
	return ScoreWithWeights(seeker, guide, DefaultWeights())
}

func ScoreWithWeights(seeker, guide Profile, w Weights) Result {
	procedure := boolScore(procedureMatch(seeker, guide))
	details := boolScore(detailsMatch(seeker.ProcedureDetails, guide.ProcedureDetails))
	age := AgeProximity(seeker.AgeRange, guide.AgeRange)
	activity := boolScore(seeker.ActivityLevel != "" && strings.EqualFold(seeker.ActivityLevel, guide.ActivityLevel))
	gender := genderScore(seeker.Gender, guide.Gender)
	goals := OverlapRatio(seeker.RecoveryGoals, guide.RecoveryGoals)
	factors := OverlapRatio(seeker.ComplicatingFactors, guide.ComplicatingFactors)
	lifestyle := OverlapRatio(seeker.LifestyleContext, guide.LifestyleContext)

	total := procedure*w.ProcedureType +
		details*w.ProcedureDetails +
		age*w.AgeRange +
		activity*w.ActivityLevel +
		gender*w.Gender +
		goals*w.RecoveryGoals +
		factors*w.ComplicatingFactors +
		lifestyle*w.LifestyleContext

	score := 0
	if denom := w.Total(); denom > 0 {
		score = int(math.Round(100 * total / denom))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// Breakdown order is an observable contract for callers rendering it.
	breakdown := []BreakdownItem{
		{Attribute: "procedureType", Matched: procedure >= 1, Weight: w.ProcedureType},
		{Attribute: "procedureDetails", Matched: details >= 1, Weight: w.ProcedureDetails},
		{Attribute: "ageRange", Matched: age >= 0.7, Weight: w.AgeRange},
		{Attribute: "activityLevel", Matched: activity >= 1, Weight: w.ActivityLevel},
		{Attribute: "gender", Matched: gender >= 0.5, Weight: w.Gender},
		{Attribute: "recoveryGoals", Matched: goals >= 0.5, Weight: w.RecoveryGoals},
		{Attribute: "complicatingFactors", Matched: factors >= 0.5, Weight: w.ComplicatingFactors},
		{Attribute: "lifestyleContext", Matched: lifestyle >= 0.5, Weight: w.LifestyleContext},
	}

	return Result{Score: score, Breakdown: breakdown}
}

func procedureMatch(seeker, guide Profile) bool {
	if seeker.ProcedureType == "" {
		return false
	}
	if len(guide.ProcedureTypes) > 0 {
		for _, p := range guide.ProcedureTypes {
			if strings.EqualFold(seeker.ProcedureType, p) {
				return true
			}
		}
		return false
	}
	return guide.ProcedureType != "" && strings.EqualFold(seeker.ProcedureType, guide.ProcedureType)
}

func detailsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}

// AgeProximity steps down with distance in the ordered range list:
// 1.0 at distance 0, 0.7 at 1, 0.3 at 2, 0 beyond or unknown.
func AgeProximity(a, b string) float64 {
	ia := ageRangeIndex(a)
	ib := ageRangeIndex(b)
	if ia < 0 || ib < 0 {
		return 0
	}
	d := ia - ib
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 1.0
	case 1:
		return 0.7
	case 2:
		return 0.3
	default:
		return 0
	}
}

func ageRangeIndex(r string) int {
	for i, v := range ageRangeOrder {
		if strings.EqualFold(v, r) {
			return i
		}
	}
	return -1
}

// genderScore is neutral (0.5) whenever either side is missing or OTHER,
// so unspecified gender never penalizes a pairing.
func genderScore(a, b string) float64 {
	if a == "" || b == "" {
		return 0.5
	}
	if strings.EqualFold(a, GenderOther) || strings.EqualFold(b, GenderOther) {
		return 0.5
	}
	if strings.EqualFold(a, b) {
		return 1.0
	}
	return 0
}

// OverlapRatio is |a ∩ b| / max(|a|, |b|) over case-folded sets.
// Two empty sets match vacuously; exactly one empty set never matches.
func OverlapRatio(a, b []string) float64 {
	as := foldSet(a)
	bs := foldSet(b)
	if len(as) == 0 && len(bs) == 0 {
		return 1
	}
	if len(as) == 0 || len(bs) == 0 {
		return 0
	}

	inter := 0
	for k := range as {
		if _, ok := bs[k]; ok {
			inter++
		}
	}

	maxLen := len(as)
	if len(bs) > maxLen {
		maxLen = len(bs)
	}
	return float64(inter) / float64(maxLen)
}

func foldSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		it = strings.ToLower(strings.TrimSpace(it))
		if it == "" {
			continue
		}
		out[it] = struct{}{}
	}
	return out
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
