package matching

import (
	"reflect"
	"testing"
)

func TestDefaultWeightsSumTo100(t *testing.T) {
	if got := DefaultWeights().Total(); got != 100 {
		t.Fatalf("expected weights to sum to 100, got %v", got)
	}
}

func TestScoreBounds(t *testing.T) {
	cases := []struct {
		name   string
		seeker Profile
		guide  Profile
	}{
		{name: "empty profiles", seeker: Profile{}, guide: Profile{}},
		{
			name:   "full match",
			seeker: fullSeeker(),
			guide:  fullGuide(),
		},
		{
			name:   "total mismatch",
			seeker: Profile{ProcedureType: "ACL Reconstruction", AgeRange: "teens", Gender: GenderMale, ActivityLevel: "ELITE", RecoveryGoals: []string{"a"}},
			guide:  Profile{ProcedureTypes: []string{"Hip Replacement"}, AgeRange: "70s+", Gender: GenderFemale, ActivityLevel: "SEDENTARY", RecoveryGoals: []string{"b"}},
		},
	}

	for _, tc := range cases {
		res := Score(tc.seeker, tc.guide)
		if res.Score < 0 || res.Score > 100 {
			t.Fatalf("%s: score out of bounds: %d", tc.name, res.Score)
		}
	}
}

func TestProcedureMismatchCapsScore(t *testing.T) {
	seeker := fullSeeker()
	guide := fullGuide()
	guide.ProcedureTypes = []string{"Hip Replacement"}
	guide.ProcedureType = "Hip Replacement"

	res := Score(seeker, guide)
	if res.Score > 70 {
		t.Fatalf("expected procedure mismatch to cap score at 70, got %d", res.Score)
	}
	if res.Breakdown[0].Matched {
		t.Fatalf("expected procedureType unmatched in breakdown")
	}
}

func TestProcedureMatchFallsBackToSingleType(t *testing.T) {
	seeker := Profile{ProcedureType: "ACL Reconstruction"}
	guide := Profile{ProcedureType: "acl reconstruction"}

	res := Score(seeker, guide)
	if !res.Breakdown[0].Matched {
		t.Fatalf("expected case-insensitive single-type procedure match")
	}
}

func TestAgeProximity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"30s", "30s", 1.0},
		{"30s", "40s", 0.7},
		{"30s", "50s", 0.3},
		{"30s", "60s", 0},
		{"30s", "70s+", 0},
		{"teens", "20s", 0.7},
		{"30s", "", 0},
		{"", "", 0},
	}

	for _, tc := range cases {
		if got := AgeProximity(tc.a, tc.b); got != tc.want {
			t.Fatalf("AgeProximity(%q,%q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestOverlapRatio(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want float64
	}{
		{name: "both empty is vacuous", a: nil, b: nil, want: 1},
		{name: "one empty never matches", a: []string{"a"}, b: nil, want: 0},
		{name: "half overlap", a: []string{"a"}, b: []string{"A", "b"}, want: 0.5},
		{name: "identical", a: []string{"a", "b"}, b: []string{"b", "a"}, want: 1},
		{name: "disjoint", a: []string{"a"}, b: []string{"b"}, want: 0},
	}

	for _, tc := range cases {
		if got := OverlapRatio(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: OverlapRatio = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestGenderNeutrality(t *testing.T) {
	base := Profile{ProcedureType: "x", ProcedureTypes: []string{"x"}, AgeRange: "30s", ActivityLevel: "RECREATIONAL"}

	withGender := func(p Profile, g string) Profile {
		p.Gender = g
		return p
	}

	missing := Score(withGender(base, ""), withGender(base, GenderFemale))
	other := Score(withGender(base, GenderOther), withGender(base, GenderFemale))
	equal := Score(withGender(base, GenderFemale), withGender(base, GenderFemale))
	different := Score(withGender(base, GenderMale), withGender(base, GenderFemale))

	if !breakdownMatched(missing, "gender") {
		t.Fatalf("missing gender should display as matched (neutral)")
	}
	if !breakdownMatched(other, "gender") {
		t.Fatalf("OTHER gender should display as matched (neutral)")
	}
	if equal.Score <= missing.Score {
		t.Fatalf("equal gender should outscore neutral: %d vs %d", equal.Score, missing.Score)
	}
	if different.Score >= missing.Score {
		t.Fatalf("different gender should underscore neutral: %d vs %d", different.Score, missing.Score)
	}
}

func TestBreakdownOrder(t *testing.T) {
	res := Score(Profile{}, Profile{})

	want := []string{
		"procedureType",
		"procedureDetails",
		"ageRange",
		"activityLevel",
		"gender",
		"recoveryGoals",
		"complicatingFactors",
		"lifestyleContext",
	}

	got := make([]string, 0, len(res.Breakdown))
	for _, item := range res.Breakdown {
		got = append(got, item.Attribute)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("breakdown order = %v, want %v", got, want)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	seeker := fullSeeker()
	guide := fullGuide()

	first := Score(seeker, guide)
	second := Score(seeker, guide)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results for identical inputs")
	}
}

// Golden value for the canonical seeker/guide pairing: procedure 30,
// age 10, activity 15, gender neutral 5, goals 1/2 overlap 7.5, empty
// factor and lifestyle sets vacuous 5 + 5, details absent 0 = 77.5 → 78.
func TestScoreGoldenValue(t *testing.T) {
	seeker := Profile{
		ProcedureType: "ACL Reconstruction",
		AgeRange:      "30s",
		ActivityLevel: "RECREATIONAL",
		RecoveryGoals: []string{"Return to competitive sport"},
	}
	guide := Profile{
		ProcedureTypes: []string{"ACL Reconstruction"},
		AgeRange:       "30s",
		ActivityLevel:  "RECREATIONAL",
		RecoveryGoals:  []string{"Return to competitive sport", "Pain-free daily living"},
	}

	res := Score(seeker, guide)
	if res.Score != 78 {
		t.Fatalf("golden score = %d, want 78", res.Score)
	}
}

func breakdownMatched(res Result, attribute string) bool {
	for _, item := range res.Breakdown {
		if item.Attribute == attribute {
			return item.Matched
		}
	}
	return false
}

func fullSeeker() Profile {
	return Profile{
		ProcedureType:       "ACL Reconstruction",
		ProcedureDetails:    "Patellar tendon graft",
		AgeRange:            "30s",
		Gender:              GenderFemale,
		ActivityLevel:       "RECREATIONAL",
		RecoveryGoals:       []string{"Return to competitive sport"},
		ComplicatingFactors: []string{"Prior meniscus tear"},
		LifestyleContext:    []string{"Parent of young kids"},
	}
}

func fullGuide() Profile {
	return Profile{
		ProcedureType:       "ACL Reconstruction",
		ProcedureTypes:      []string{"ACL Reconstruction", "Meniscus Repair"},
		ProcedureDetails:    "Patellar tendon graft",
		AgeRange:            "30s",
		Gender:              GenderFemale,
		ActivityLevel:       "RECREATIONAL",
		RecoveryGoals:       []string{"Return to competitive sport"},
		ComplicatingFactors: []string{"Prior meniscus tear"},
		LifestyleContext:    []string{"Parent of young kids"},
	}
}
