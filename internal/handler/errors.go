package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgUnknownStation    = "Unknown station '%s'"
	ErrMsgInvalidJobID      = "Invalid job ID"

	// Production error messages
	ErrMsgStartCraftFailed = "Failed to start crafting"
	ErrMsgCancelFailed     = "Failed to cancel job"

	// Station error messages
	ErrMsgUnlockStationFailed  = "Failed to unlock station"
	ErrMsgUpgradeStationFailed = "Failed to upgrade station"

	// Recipe error messages
	ErrMsgUnlockRecipeFailed = "Failed to unlock recipe"
)

// Success messages for API responses
const (
	MsgCraftQueuedSuccess    = "Crafting job queued"
	MsgCraftCancelledSuccess = "Crafting job cancelled and materials refunded"
	MsgStationUnlocked       = "Station unlocked"
	MsgStationUpgraded       = "Station upgraded"
	MsgRecipeUnlocked        = "Recipe unlocked"
	MsgQuestCompleted        = "Quest flag recorded"
)
