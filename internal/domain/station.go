package domain

// StationKind is the closed enumeration of production station kinds.
// The declaration order is the unlock order: every kind past the basic two is
// gated on mastery of the kind directly before it.
type StationKind int

const (
	StationWorkbench StationKind = iota
	StationForge
	StationLoom
	StationKiln
	StationAlchemyLab
	StationJewelersBench
)

// StationKindCount is the number of station kinds. Arrays keyed by StationKind
// are sized with it so adding a kind is a compile-time-checked change.
const StationKindCount = int(StationJewelersBench) + 1

var stationKindNames = [StationKindCount]string{
	StationWorkbench:     "workbench",
	StationForge:         "forge",
	StationLoom:          "loom",
	StationKiln:          "kiln",
	StationAlchemyLab:    "alchemy_lab",
	StationJewelersBench: "jewelers_bench",
}

func (k StationKind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return stationKindNames[k]
}

// Valid reports whether k names a real station kind.
func (k StationKind) Valid() bool {
	return k >= StationWorkbench && int(k) < StationKindCount
}

// StationKindFromName maps a catalog key to its kind.
func StationKindFromName(name string) (StationKind, bool) {
	for i, n := range stationKindNames {
		if n == name {
			return StationKind(i), true
		}
	}
	return 0, false
}

// StationUpgradeCost is the price of raising a station one level.
type StationUpgradeCost struct {
	Currency  int                `json:"currency"`
	Materials map[MaterialID]int `json:"materials,omitempty"`
}

// StationSpec is the immutable catalog definition of a station kind.
type StationSpec struct {
	Kind             StationKind          `json:"kind"`
	DisplayName      string               `json:"display_name"`
	MaxLevel         int                  `json:"max_level"`
	BaseSpeed        float64              `json:"base_speed"`
	StartsUnlocked   bool                 `json:"starts_unlocked"`
	PrereqMastery    int                  `json:"prereq_mastery"` // required mastery level at the preceding kind
	UpgradeCosts     []StationUpgradeCost `json:"upgrade_costs"`  // index 0 = cost of level 1 -> 2
	Specializations  []string             `json:"specializations,omitempty"`
}

// StationState is the mutable per-station progress that survives a restart.
type StationState struct {
	Kind     StationKind `json:"kind"`
	Level    int         `json:"level"`
	Unlocked bool        `json:"unlocked"`
}
