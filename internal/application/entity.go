// AngelaMos | 2026
// entity.go

package application

import (
	"time"

	"github.com/rentloop/rentloop-api/internal/lifecycle"
)

const (
	StatusPending     = "pending"
	StatusShortlisted = "shortlisted"
	StatusRejected    = "rejected"
	StatusAccepted    = "accepted"
	StatusCancelled   = "cancelled"
)

// Accepted, rejected and cancelled are terminal. Nothing ever returns
// to pending.
var StatusMachine = lifecycle.New("application", map[string][]string{
	StatusPending: {
		StatusShortlisted,
		StatusRejected,
		StatusAccepted,
		StatusCancelled,
	},
	StatusShortlisted: {
		StatusAccepted,
		StatusRejected,
		StatusCancelled,
	},
})

type Application struct {
	ID                 string    `db:"id"`
	PropertyID         string    `db:"property_id"`
	TenantID           string    `db:"tenant_id"`
	OwnerID            string    `db:"owner_id"`
	Message            string    `db:"message"`
	MonthlyRentOffered *int64    `db:"monthly_rent_offered"`
	MoveInDate         time.Time `db:"move_in_date"`
	Status             string    `db:"status"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}

func (a *Application) IsTerminal() bool {
	return StatusMachine.IsTerminal(a.Status)
}
