// AngelaMos | 2026
// favorite.go

package favorite

import (
	"time"
)

type Favorite struct {
	ID         string    `db:"id"          json:"id"`
	TenantID   string    `db:"tenant_id"   json:"tenant_id"`
	PropertyID string    `db:"property_id" json:"property_id"`
	CreatedAt  time.Time `db:"created_at"  json:"created_at"`
}
