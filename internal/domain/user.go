package domain

import "time"

// User statuses relevant to the autopilot subsystem. Regular members and
// suspended accounts use other values and are never selected as actors.
const (
	UserStatusEditor          = 2
	UserStatusSyntheticMember = 6
)

// User is a site account. Synthetic members (AI personas) and editors are
// distinguished by Status and form the two actor pools for simulated
// engagement.
type User struct {
	ID        int64
	Name      string
	Profile   string
	Status    int
	CreatedAt time.Time
}
