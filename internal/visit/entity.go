// AngelaMos | 2026
// entity.go

package visit

import (
	"time"

	"github.com/rentloop/rentloop-api/internal/lifecycle"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// A visit can only complete after it was accepted. Rejected, completed
// and cancelled are terminal.
var StatusMachine = lifecycle.New("visit", map[string][]string{
	StatusPending: {
		StatusAccepted,
		StatusRejected,
		StatusCancelled,
	},
	StatusAccepted: {
		StatusCompleted,
		StatusCancelled,
	},
})

type Visit struct {
	ID          string    `db:"id"`
	PropertyID  string    `db:"property_id"`
	TenantID    string    `db:"tenant_id"`
	OwnerID     string    `db:"owner_id"`
	PreferredAt time.Time `db:"preferred_at"`
	Notes       string    `db:"notes"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (v *Visit) IsTerminal() bool {
	return StatusMachine.IsTerminal(v.Status)
}
