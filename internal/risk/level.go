// Package risk defines the ordinal severity tier used across all
// condition factors (weather, traffic, events) and by the scorer.
package risk

// Level is an ordinal risk classification: Low < Medium < High < Critical.
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// Rank returns the ordinal position of the level. Unknown levels rank
// below Low so degraded data never inflates an aggregate.
func (l Level) Rank() int {
	switch l {
	case LevelLow:
		return 1
	case LevelMedium:
		return 2
	case LevelHigh:
		return 3
	case LevelCritical:
		return 4
	default:
		return 0
	}
}

// AtLeast reports whether l is at or above the given level.
func (l Level) AtLeast(other Level) bool {
	return l.Rank() >= other.Rank()
}

// Max returns the higher of two levels.
func Max(a, b Level) Level {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// Valid reports whether l is one of the four defined tiers.
func (l Level) Valid() bool {
	return l.Rank() > 0
}
