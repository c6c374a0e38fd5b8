package mastery

// Requirement curve parameters. The increment to reach level 2 is
// BaseIncrement; every later increment is GrowthFactor times the previous.
const (
	BaseIncrement = 100
	GrowthFactor  = 1.5
)
