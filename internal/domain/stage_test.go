package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageAtIsMonotonic(t *testing.T) {
	for _, gender := range []Gender{GenderMale, GenderFemale} {
		for _, path := range []PostSecondaryPath{PathJuniorCollege, PathPolytechnic, PathWork} {
			order := map[GrowthStage]int{
				StageNewborn: 0, StageKindergarten: 1, StagePrimary: 2,
				StageSecondary: 3, StagePostSecondary: 4,
				StageNationalService: 5, StageUniversity: 6, StageAdult: 7,
			}
			prev := -1
			for age := 0; age <= 360; age++ {
				stage := StageAt(age, gender, path)
				rank := order[stage]
				assert.GreaterOrEqual(t, rank, prev,
					"stage regressed at %d months for %s/%s", age, gender, path)
				prev = rank
			}
		}
	}
}

func TestStageAtGendersAgreeBeforeSeventeen(t *testing.T) {
	for age := 0; age < MonthsPostSecondary; age++ {
		male := StageAt(age, GenderMale, PathJuniorCollege)
		female := StageAt(age, GenderFemale, PathJuniorCollege)
		assert.Equal(t, female, male, "stages diverge at %d months", age)
	}
}

func TestStageAtThresholds(t *testing.T) {
	tests := []struct {
		name     string
		age      int
		gender   Gender
		path     PostSecondaryPath
		expected GrowthStage
	}{
		{"birth", 0, GenderFemale, PathJuniorCollege, StageNewborn},
		{"just before kindergarten", 35, GenderMale, PathJuniorCollege, StageNewborn},
		{"kindergarten boundary", 36, GenderMale, PathJuniorCollege, StageKindergarten},
		{"primary boundary", 84, GenderFemale, PathJuniorCollege, StagePrimary},
		{"secondary boundary", 156, GenderMale, PathJuniorCollege, StageSecondary},
		{"post-secondary boundary", 204, GenderFemale, PathJuniorCollege, StagePostSecondary},
		{"male national service", 230, GenderMale, PathJuniorCollege, StageNationalService},
		{"female university at 19", 230, GenderFemale, PathJuniorCollege, StageUniversity},
		{"male university after NS", 252, GenderMale, PathJuniorCollege, StageUniversity},
		{"female adult", 276, GenderFemale, PathJuniorCollege, StageAdult},
		{"male adult", 300, GenderMale, PathJuniorCollege, StageAdult},
		{"work path female adult early", 228, GenderFemale, PathWork, StageAdult},
		{"work path male adult after NS", 252, GenderMale, PathWork, StageAdult},
		{"work path male still in NS", 240, GenderMale, PathWork, StageNationalService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StageAt(tt.age, tt.gender, tt.path))
		})
	}
}

func TestTerminalAgeMonths(t *testing.T) {
	assert.Equal(t, 300, TerminalAgeMonths(GenderMale, PathJuniorCollege))
	assert.Equal(t, 276, TerminalAgeMonths(GenderFemale, PathJuniorCollege))
	assert.Equal(t, 252, TerminalAgeMonths(GenderMale, PathWork))
	assert.Equal(t, 228, TerminalAgeMonths(GenderFemale, PathWork))
}

func TestProfileValidate(t *testing.T) {
	valid := func() *Profile {
		return &Profile{
			Father:      Parent{Residency: ResidencyCitizen},
			Mother:      Parent{Residency: ResidencyPR},
			ChildGender: GenderFemale,
			Realism:     TierRealistic,
			ChildOrder:  1,
			BaseYear:    2025,
		}
	}

	assert.NoError(t, valid().Validate())

	p := valid()
	p.Father.Residency = ""
	assert.ErrorIs(t, p.Validate(), ErrProfileInvalid)

	p = valid()
	p.ChildGender = "OTHER"
	assert.ErrorIs(t, p.Validate(), ErrProfileInvalid)

	p = valid()
	p.Realism = ""
	assert.ErrorIs(t, p.Validate(), ErrProfileInvalid)

	p = valid()
	p.ChildOrder = 0
	assert.ErrorIs(t, p.Validate(), ErrProfileInvalid)
}
