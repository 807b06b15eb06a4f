package engagement

import "github.com/pollboard/pollboard-backend/internal/domain"

// totalWeight sums the configured action weights, counting only positive
// entries.
func totalWeight(weights map[domain.EngagementAction]int) int {
	total := 0
	for _, a := range domain.EngagementActions() {
		if w := weights[a]; w > 0 {
			total += w
		}
	}
	return total
}

// pickAction maps one uniform roll in [0, totalWeight) onto an action.
// Actions are walked in their stable declaration order; zero or negative
// weights remove an action from the draw.
func pickAction(weights map[domain.EngagementAction]int, roll int) domain.EngagementAction {
	for _, a := range domain.EngagementActions() {
		w := weights[a]
		if w <= 0 {
			continue
		}
		if roll < w {
			return a
		}
		roll -= w
	}
	return domain.ActionVote
}
