// AngelaMos | 2026
// entity.go

package agreement

import (
	"time"

	"github.com/rentloop/rentloop-api/internal/lifecycle"
)

const (
	StatusDraft      = "draft"
	StatusActive     = "active"
	StatusCompleted  = "completed"
	StatusTerminated = "terminated"
)

// Activation to active happens only through signing; the machine still
// lists the edge so a fully signed draft can move forward.
var StatusMachine = lifecycle.New("agreement", map[string][]string{
	StatusDraft: {
		StatusActive,
		StatusTerminated,
	},
	StatusActive: {
		StatusCompleted,
		StatusTerminated,
	},
})

type Agreement struct {
	ID              string    `db:"id"`
	ApplicationID   string    `db:"application_id"`
	PropertyID      string    `db:"property_id"`
	TenantID        string    `db:"tenant_id"`
	OwnerID         string    `db:"owner_id"`
	StartDate       time.Time `db:"start_date"`
	EndDate         time.Time `db:"end_date"`
	MonthlyRent     int64     `db:"monthly_rent"`
	SecurityDeposit int64     `db:"security_deposit"`
	LockInMonths    int       `db:"lock_in_months"`
	Terms           string    `db:"terms"`
	SignedByTenant  bool      `db:"signed_by_tenant"`
	SignedByOwner   bool      `db:"signed_by_owner"`
	Status          string    `db:"status"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (a *Agreement) FullySigned() bool {
	return a.SignedByTenant && a.SignedByOwner
}

func (a *Agreement) IsParty(userID string) bool {
	return a.TenantID == userID || a.OwnerID == userID
}
