package domain

// QualityTier is one rung on the ordered output-quality ladder.
// Upgrades move exactly one rung at a time and never pass QualityMythic.
type QualityTier int

const (
	QualityCrude QualityTier = iota
	QualityCommon
	QualityFine
	QualitySuperior
	QualityExquisite
	QualityMythic
)

// QualityTierCount is the number of rungs on the ladder.
const QualityTierCount = int(QualityMythic) + 1

var qualityNames = map[QualityTier]string{
	QualityCrude:     "CRUDE",
	QualityCommon:    "COMMON",
	QualityFine:      "FINE",
	QualitySuperior:  "SUPERIOR",
	QualityExquisite: "EXQUISITE",
	QualityMythic:    "MYTHIC",
}

var qualityMultipliers = map[QualityTier]float64{
	QualityCrude:     0.80,
	QualityCommon:    1.00,
	QualityFine:      1.15,
	QualitySuperior:  1.35,
	QualityExquisite: 1.60,
	QualityMythic:    2.00,
}

func (q QualityTier) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return "UNKNOWN"
}

// StatMultiplier returns the potency multiplier carried by this tier.
func (q QualityTier) StatMultiplier() float64 {
	if m, ok := qualityMultipliers[q]; ok {
		return m
	}
	return 1.0
}

// Upgraded returns the next rung up, clamped at the top of the ladder.
func (q QualityTier) Upgraded() QualityTier {
	if q >= QualityMythic {
		return QualityMythic
	}
	return q + 1
}

// Valid reports whether q is a rung on the ladder.
func (q QualityTier) Valid() bool {
	return q >= QualityCrude && q <= QualityMythic
}

// QualityTierFromName maps a catalog string to a tier. Unknown names map to
// QualityCommon so a bad config entry degrades rather than breaks resolution.
func QualityTierFromName(name string) (QualityTier, bool) {
	for tier, n := range qualityNames {
		if n == name {
			return tier, true
		}
	}
	return QualityCommon, false
}
