package production

const (
	// MinMasterySpeedFactor floors the mastery speed bonus so craft time
	// never drops below 10% of base duration.
	MinMasterySpeedFactor = 0.1
	// MinBatchFactor floors batch efficiency so batching never saves more
	// than half the proportional time.
	MinBatchFactor = 0.5
	// BatchDiscountPerUnit is the linear batch discount per unit past the first.
	BatchDiscountPerUnit = 0.05

	// Rejection reason labels for metrics
	RejectReasonQueueFull = "queue_full"
	RejectReasonRecipe    = "recipe"
	RejectReasonStation   = "station"
	RejectReasonMastery   = "mastery"
	RejectReasonMaterials = "materials"
	RejectReasonQuantity  = "quantity"
	RejectReasonOther     = "other"
)
