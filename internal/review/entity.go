// AngelaMos | 2026
// entity.go

package review

import (
	"time"
)

// A review targets exactly one of a property or a user. The unused
// target column stays NULL.
type Review struct {
	ID               string    `db:"id" json:"id"`
	AuthorID         string    `db:"author_id" json:"author_id"`
	TargetPropertyID *string   `db:"target_property_id" json:"target_property_id,omitempty"`
	TargetUserID     *string   `db:"target_user_id" json:"target_user_id,omitempty"`
	Rating           int       `db:"rating" json:"rating"`
	Comment          string    `db:"comment" json:"comment"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}
