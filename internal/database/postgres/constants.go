package postgres

const (
	// CounterTotalCrafted is the engine_counters row holding the lifetime
	// count of produced output units.
	CounterTotalCrafted = "total_crafted"
)
