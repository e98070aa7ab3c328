package services

import "github.com/woningspotters/woningspotters-api/internal/models"

type Limits struct {
	SearchesPerDay int
	MaxAlerts      int
	Favorites      bool
	Alerts         bool
	Export         bool
}

var tierLimits = map[models.Tier]Limits{
	models.TierFree:  {SearchesPerDay: 5},
	models.TierPro:   {SearchesPerDay: 30, MaxAlerts: 3, Favorites: true, Alerts: true},
	models.TierUltra: {SearchesPerDay: 100, MaxAlerts: 10, Favorites: true, Alerts: true, Export: true},
}

// LimitsFor returns the allowances of tier. Unknown tiers get the free limits.
func LimitsFor(tier models.Tier) Limits {
	if l, ok := tierLimits[tier]; ok {
		return l
	}
	return tierLimits[models.TierFree]
}

func ParseTier(s string) (models.Tier, bool) {
	t := models.Tier(s)
	_, ok := tierLimits[t]
	return t, ok
}

func tierLabel(t models.Tier) string {
	switch t {
	case models.TierPro:
		return "Pro"
	case models.TierUltra:
		return "Ultra"
	default:
		return "Free"
	}
}
