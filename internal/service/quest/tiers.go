package quest

import "github.com/lingora/lingora-backend/internal/domain"

// pointsTiers is the static ordered list of point-threshold quests. A tier
// is complete iff the user's cumulative points reach its value; nothing is
// written anywhere.
var pointsTiers = []domain.PointsQuestTier{
	{Title: "Earn 20 XP", Value: 20},
	{Title: "Earn 50 XP", Value: 50},
	{Title: "Earn 100 XP", Value: 100},
	{Title: "Earn 250 XP", Value: 250},
	{Title: "Earn 500 XP", Value: 500},
	{Title: "Earn 1000 XP", Value: 1000},
}

// TierStatuses projects the user's cumulative points onto every tier.
// Progress is clamped to the tier value so completed tiers read 100%.
func TierStatuses(points int) []domain.TierStatus {
	statuses := make([]domain.TierStatus, 0, len(pointsTiers))
	for _, tier := range pointsTiers {
		statuses = append(statuses, domain.TierStatus{
			Tier:     tier,
			Progress: min(points, tier.Value),
			Complete: points >= tier.Value,
		})
	}
	return statuses
}
