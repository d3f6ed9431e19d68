package domain

// GrowthStage is a named, age-bounded phase of the child's life. Stages key
// cost and benefit lookups and are resolved from age in months.
type GrowthStage string

const (
	StageNewborn         GrowthStage = "NEWBORN"
	StageKindergarten    GrowthStage = "KINDERGARTEN"
	StagePrimary         GrowthStage = "PRIMARY"
	StageSecondary       GrowthStage = "SECONDARY"
	StagePostSecondary   GrowthStage = "POST_SECONDARY"
	StageNationalService GrowthStage = "NATIONAL_SERVICE"
	StageUniversity      GrowthStage = "UNIVERSITY"
	StageAdult           GrowthStage = "ADULT"
)

// PostSecondaryPath is the semantic choice value carried by the
// post-secondary decision event. It changes subsequent fee lookups and the
// terminal age.
type PostSecondaryPath string

const (
	PathJuniorCollege PostSecondaryPath = "JC"
	PathPolytechnic   PostSecondaryPath = "POLY"
	PathITE           PostSecondaryPath = "ITE"
	PathWork          PostSecondaryPath = "WORK"
)

// Stage boundary ages in months. The pre-17 thresholds are gender
// independent; the post-secondary branch differs by gender because national
// service applies to males only and extends the male terminal age.
const (
	MonthsKindergarten  = 36
	MonthsPrimary       = 84
	MonthsSecondary     = 156
	MonthsPostSecondary = 204
	MonthsNSStart       = 228
	MonthsNSEnd         = 252

	MonthsUniversityFemale = 228
	MonthsUniversityMale   = 252

	MonthsAdultFemale = 276
	MonthsAdultMale   = 300
)

// TerminalAgeMonths returns the age at which the simulation completes for a
// given gender and post-secondary path. Choosing the work path skips
// university and pulls adulthood forward.
func TerminalAgeMonths(gender Gender, path PostSecondaryPath) int {
	if path == PathWork {
		if gender == GenderMale {
			return MonthsNSEnd
		}
		return MonthsUniversityFemale
	}
	if gender == GenderMale {
		return MonthsAdultMale
	}
	return MonthsAdultFemale
}

// StageAt resolves the growth stage for an age in months. It is a pure,
// monotonically non-decreasing function of age for a fixed gender and path.
func StageAt(ageMonths int, gender Gender, path PostSecondaryPath) GrowthStage {
	if ageMonths >= TerminalAgeMonths(gender, path) {
		return StageAdult
	}
	switch {
	case ageMonths < MonthsKindergarten:
		return StageNewborn
	case ageMonths < MonthsPrimary:
		return StageKindergarten
	case ageMonths < MonthsSecondary:
		return StagePrimary
	case ageMonths < MonthsPostSecondary:
		return StageSecondary
	}
	// Post-16 branch.
	if gender == GenderMale {
		switch {
		case ageMonths < MonthsNSStart:
			return StagePostSecondary
		case ageMonths < MonthsNSEnd:
			return StageNationalService
		default:
			return StageUniversity
		}
	}
	if ageMonths < MonthsUniversityFemale {
		return StagePostSecondary
	}
	return StageUniversity
}
