package utils

import (
	"testing"

	"github.com/pendlerapp-dev/schichtplan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validPattern() *domain.RotationPattern {
	return &domain.RotationPattern{
		RotationIndex:  5,
		Days:           [7]string{"morning", "morning", "afternoon", "off", "night", "off", "off"},
		MorningStart:   "06:00",
		MorningEnd:     "14:00",
		AfternoonStart: "14:00",
		AfternoonEnd:   "22:00",
		NightStart:     "22:00",
		NightEnd:       "06:00",
	}
}

func TestValidateRotationPattern(t *testing.T) {
	assert.NoError(t, ValidateRotationPattern(validPattern(), 15))

	outside := validPattern()
	outside.RotationIndex = 16
	assert.Error(t, ValidateRotationPattern(outside, 15))

	badTime := validPattern()
	badTime.NightEnd = "6:00"
	assert.Error(t, ValidateRotationPattern(badTime, 15))

	badDay := validPattern()
	badDay.Days[2] = "späti"
	assert.Error(t, ValidateRotationPattern(badDay, 15))
}
