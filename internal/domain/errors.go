package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Ledger errors
	ErrMsgUnknownMaterial      = "unknown material"
	ErrMsgInsufficientMaterial = "insufficient material"
	ErrMsgNegativeAmount       = "amount must not be negative"

	// Recipe errors
	ErrMsgRecipeNotFound = "recipe not found"
	ErrMsgRecipeLocked   = "recipe is not known"
	ErrMsgGateNotMet     = "recipe unlock gate not met"

	// Station errors
	ErrMsgStationLocked      = "station is locked"
	ErrMsgStationMaxLevel    = "station is at max level"
	ErrMsgPrereqNotMet       = "prerequisite station mastery not met"
	ErrMsgUnknownStationKind = "unknown station kind"

	// Mastery errors
	ErrMsgInsufficientMastery = "insufficient mastery level"

	// Queue errors
	ErrMsgQueueFull       = "production queue is full"
	ErrMsgJobNotFound     = "job not found"
	ErrMsgJobCompleted    = "job already completed"
	ErrMsgInvalidQuantity = "quantity must be positive"

	// Catalog errors
	ErrMsgMissingCatalogEntry = "missing catalog entry"
)

// Common domain errors
// These errors should be used consistently across all layers of the engine.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Ledger errors
	ErrUnknownMaterial      = errors.New(ErrMsgUnknownMaterial)
	ErrInsufficientMaterial = errors.New(ErrMsgInsufficientMaterial)
	ErrNegativeAmount       = errors.New(ErrMsgNegativeAmount)

	// Recipe errors
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)
	ErrRecipeLocked   = errors.New(ErrMsgRecipeLocked)
	ErrGateNotMet     = errors.New(ErrMsgGateNotMet)

	// Station errors
	ErrStationLocked      = errors.New(ErrMsgStationLocked)
	ErrStationMaxLevel    = errors.New(ErrMsgStationMaxLevel)
	ErrPrereqNotMet       = errors.New(ErrMsgPrereqNotMet)
	ErrUnknownStationKind = errors.New(ErrMsgUnknownStationKind)

	// Mastery errors
	ErrInsufficientMastery = errors.New(ErrMsgInsufficientMastery)

	// Queue errors
	ErrQueueFull       = errors.New(ErrMsgQueueFull)
	ErrJobNotFound     = errors.New(ErrMsgJobNotFound)
	ErrJobCompleted    = errors.New(ErrMsgJobCompleted)
	ErrInvalidQuantity = errors.New(ErrMsgInvalidQuantity)

	// Catalog errors
	ErrMissingCatalogEntry = errors.New(ErrMsgMissingCatalogEntry)
)
