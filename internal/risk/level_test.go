package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/searoute/searoute/internal/risk"
)

func TestLevel_Rank(t *testing.T) {
	assert.Equal(t, 1, risk.LevelLow.Rank())
	assert.Equal(t, 2, risk.LevelMedium.Rank())
	assert.Equal(t, 3, risk.LevelHigh.Rank())
	assert.Equal(t, 4, risk.LevelCritical.Rank())

	// Unknown levels rank below Low.
	assert.Equal(t, 0, risk.Level("").Rank())
	assert.Equal(t, 0, risk.Level("Severe").Rank())
}

func TestLevel_AtLeast(t *testing.T) {
	assert.True(t, risk.LevelHigh.AtLeast(risk.LevelMedium))
	assert.True(t, risk.LevelMedium.AtLeast(risk.LevelMedium))
	assert.False(t, risk.LevelLow.AtLeast(risk.LevelMedium))
	assert.False(t, risk.Level("").AtLeast(risk.LevelLow))
}

func TestMax(t *testing.T) {
	assert.Equal(t, risk.LevelCritical, risk.Max(risk.LevelHigh, risk.LevelCritical))
	assert.Equal(t, risk.LevelHigh, risk.Max(risk.LevelHigh, risk.LevelLow))
	assert.Equal(t, risk.LevelLow, risk.Max(risk.LevelLow, risk.Level("")))
}

func TestLevel_Valid(t *testing.T) {
	assert.True(t, risk.LevelLow.Valid())
	assert.True(t, risk.LevelCritical.Valid())
	assert.False(t, risk.Level("").Valid())
}
