package station

const (
	// SpeedBonusPerLevel is the linear per-level speed term above level 1.
	SpeedBonusPerLevel = 0.10
	// QualityBonusPerLevel is the advisory per-level quality term above level 1.
	QualityBonusPerLevel = 0.02
	// UpgradeCurrency is the wallet currency debited by station upgrades.
	UpgradeCurrency = "gold"
)
