// AngelaMos | 2026
// entity.go

package property

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rentloop/rentloop-api/internal/lifecycle"
)

const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusRentedOut = "rented_out"
)

const (
	TypeApartment        = "apartment"
	TypeIndependentHouse = "independent_house"
	TypePG               = "pg"
	TypeStudio           = "studio"
	TypeSharedFlat       = "shared_flat"
)

const (
	FurnishingNone = "unfurnished"
	FurnishingSemi = "semi_furnished"
	FurnishingFull = "fully_furnished"
)

const (
	TenantsFamily    = "family"
	TenantsBachelors = "bachelors"
	TenantsStudents  = "students"
	TenantsAny       = "any"
)

// Owners move listings freely between the three states. Soft delete
// lands on paused.
var StatusMachine = lifecycle.New("property", map[string][]string{
	StatusActive:    {StatusPaused, StatusRentedOut},
	StatusPaused:    {StatusActive, StatusRentedOut},
	StatusRentedOut: {StatusActive, StatusPaused},
})

type Location struct {
	City     string   `json:"city"`
	Area     string   `json:"area"`
	Landmark string   `json:"landmark,omitempty"`
	Pincode  string   `json:"pincode"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
}

func (l Location) Value() (driver.Value, error) {
	return json.Marshal(l)
}

func (l *Location) Scan(src any) error {
	return scanJSON(src, l)
}

type Maintenance struct {
	Amount   int64 `json:"amount"`
	Included bool  `json:"included"`
}

func (m Maintenance) Value() (driver.Value, error) {
	return json.Marshal(m)
}

func (m *Maintenance) Scan(src any) error {
	return scanJSON(src, m)
}

// StringList is a JSONB-backed string slice for amenities and images.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(src any) error {
	return scanJSON(src, s)
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("scan jsonb: unsupported type %T", src)
	}
}

type Property struct {
	ID              string      `db:"id"`
	OwnerID         string      `db:"owner_id"`
	Title           string      `db:"title"`
	Description     string      `db:"description"`
	PropertyType    string      `db:"property_type"`
	BHK             int         `db:"bhk"`
	Furnishing      string      `db:"furnishing"`
	Rent            int64       `db:"rent"`
	SecurityDeposit int64       `db:"security_deposit"`
	Maintenance     Maintenance `db:"maintenance"`
	BuiltUpArea     int         `db:"built_up_area"`
	AvailableFrom   time.Time   `db:"available_from"`
	MinLockInMonths int         `db:"min_lock_in_months"`
	AllowedTenants  string      `db:"allowed_tenants"`
	PetsAllowed     bool        `db:"pets_allowed"`
	SmokingAllowed  bool        `db:"smoking_allowed"`
	Location        Location    `db:"location"`
	Amenities       StringList  `db:"amenities"`
	Images          StringList  `db:"images"`
	IsVerified      bool        `db:"is_verified"`
	Status          string      `db:"status"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

func (p *Property) IsActive() bool {
	return p.Status == StatusActive
}
