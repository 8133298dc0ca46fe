// AngelaMos | 2026
// dto.go

package property

import (
	"time"
)

type LocationInput struct {
	City     string   `json:"city"     validate:"required,min=2,max=100"`
	Area     string   `json:"area"     validate:"required,min=2,max=100"`
	Landmark string   `json:"landmark" validate:"omitempty,max=200"`
	Pincode  string   `json:"pincode"  validate:"required,len=6,numeric"`
	Lat      *float64 `json:"lat"      validate:"omitempty,gte=-90,lte=90"`
	Lng      *float64 `json:"lng"      validate:"omitempty,gte=-180,lte=180"`
}

type MaintenanceInput struct {
	Amount   int64 `json:"amount"   validate:"gte=0"`
	Included bool  `json:"included"`
}

type CreatePropertyRequest struct {
	Title           string           `json:"title"              validate:"required,min=10,max=200"`
	Description     string           `json:"description"        validate:"required,min=50,max=2000"`
	PropertyType    string           `json:"property_type"      validate:"required,oneof=apartment independent_house pg studio shared_flat"`
	BHK             int              `json:"bhk"                validate:"required,gte=1,lte=10"`
	Furnishing      string           `json:"furnishing"         validate:"required,oneof=unfurnished semi_furnished fully_furnished"`
	Rent            int64            `json:"rent"               validate:"required,gte=1000"`
	SecurityDeposit int64            `json:"security_deposit"   validate:"gte=0"`
	Maintenance     MaintenanceInput `json:"maintenance"        validate:"required"`
	BuiltUpArea     int              `json:"built_up_area"      validate:"required,gte=50"`
	AvailableFrom   time.Time        `json:"available_from"     validate:"required"`
	MinLockInMonths int              `json:"min_lock_in_months" validate:"gte=0,lte=36"`
	AllowedTenants  string           `json:"allowed_tenants"    validate:"required,oneof=family bachelors students any"`
	PetsAllowed     bool             `json:"pets_allowed"`
	SmokingAllowed  bool             `json:"smoking_allowed"`
	Location        LocationInput    `json:"location"           validate:"required"`
	Amenities       []string         `json:"amenities"          validate:"max=50,dive,min=1,max=100"`
	Images          []string         `json:"images"             validate:"max=20,dive,url"`
}

type UpdatePropertyRequest struct {
	Title           *string           `json:"title,omitempty"              validate:"omitempty,min=10,max=200"`
	Description     *string           `json:"description,omitempty"        validate:"omitempty,min=50,max=2000"`
	PropertyType    *string           `json:"property_type,omitempty"      validate:"omitempty,oneof=apartment independent_house pg studio shared_flat"`
	BHK             *int              `json:"bhk,omitempty"                validate:"omitempty,gte=1,lte=10"`
	Furnishing      *string           `json:"furnishing,omitempty"         validate:"omitempty,oneof=unfurnished semi_furnished fully_furnished"`
	Rent            *int64            `json:"rent,omitempty"               validate:"omitempty,gte=1000"`
	SecurityDeposit *int64            `json:"security_deposit,omitempty"   validate:"omitempty,gte=0"`
	Maintenance     *MaintenanceInput `json:"maintenance,omitempty"`
	BuiltUpArea     *int              `json:"built_up_area,omitempty"      validate:"omitempty,gte=50"`
	AvailableFrom   *time.Time        `json:"available_from,omitempty"`
	MinLockInMonths *int              `json:"min_lock_in_months,omitempty" validate:"omitempty,gte=0,lte=36"`
	AllowedTenants  *string           `json:"allowed_tenants,omitempty"    validate:"omitempty,oneof=family bachelors students any"`
	PetsAllowed     *bool             `json:"pets_allowed,omitempty"`
	SmokingAllowed  *bool             `json:"smoking_allowed,omitempty"`
	Location        *LocationInput    `json:"location,omitempty"`
	Amenities       *[]string         `json:"amenities,omitempty"          validate:"omitempty,max=50,dive,min=1,max=100"`
	Images          *[]string         `json:"images,omitempty"             validate:"omitempty,max=20,dive,url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused rented_out"`
}

type PropertyResponse struct {
	ID              string      `json:"id"`
	OwnerID         string      `json:"owner_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	PropertyType    string      `json:"property_type"`
	BHK             int         `json:"bhk"`
	Furnishing      string      `json:"furnishing"`
	Rent            int64       `json:"rent"`
	SecurityDeposit int64       `json:"security_deposit"`
	Maintenance     Maintenance `json:"maintenance"`
	BuiltUpArea     int         `json:"built_up_area"`
	AvailableFrom   time.Time   `json:"available_from"`
	MinLockInMonths int         `json:"min_lock_in_months"`
	AllowedTenants  string      `json:"allowed_tenants"`
	PetsAllowed     bool        `json:"pets_allowed"`
	SmokingAllowed  bool        `json:"smoking_allowed"`
	Location        Location    `json:"location"`
	Amenities       []string    `json:"amenities"`
	Images          []string    `json:"images"`
	IsVerified      bool        `json:"is_verified"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type ListPropertiesParams struct {
	Page         int
	PageSize     int
	Query        string
	City         string
	PropertyType string
	Furnishing   string
	BHK          int
	MinRent      int64
	MaxRent      int64
	PetsAllowed  *bool
	Sort         string
	Status       string
	OwnerID      string
}

func (p *ListPropertiesParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListPropertiesParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToPropertyResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		Title:           p.Title,
		Description:     p.Description,
		PropertyType:    p.PropertyType,
		BHK:             p.BHK,
		Furnishing:      p.Furnishing,
		Rent:            p.Rent,
		SecurityDeposit: p.SecurityDeposit,
		Maintenance:     p.Maintenance,
		BuiltUpArea:     p.BuiltUpArea,
		AvailableFrom:   p.AvailableFrom,
		MinLockInMonths: p.MinLockInMonths,
		AllowedTenants:  p.AllowedTenants,
		PetsAllowed:     p.PetsAllowed,
		SmokingAllowed:  p.SmokingAllowed,
		Location:        p.Location,
		Amenities:       p.Amenities,
		Images:          p.Images,
		IsVerified:      p.IsVerified,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func ToPropertyResponseList(properties []Property) []PropertyResponse {
	responses := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		responses = append(responses, ToPropertyResponse(&p))
	}
	return responses
}
