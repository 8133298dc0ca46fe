// AngelaMos | 2026
// dto.go

package application

import (
	"time"
)

type CreateApplicationRequest struct {
	Message            string    `json:"message"              validate:"required,min=20,max=1000"`
	MonthlyRentOffered *int64    `json:"monthly_rent_offered" validate:"omitempty,gte=1000"`
	MoveInDate         time.Time `json:"move_in_date"         validate:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=shortlisted rejected accepted cancelled"`
}

type ApplicationResponse struct {
	ID                 string    `json:"id"`
	PropertyID         string    `json:"property_id"`
	TenantID           string    `json:"tenant_id"`
	OwnerID            string    `json:"owner_id"`
	Message            string    `json:"message"`
	MonthlyRentOffered *int64    `json:"monthly_rent_offered,omitempty"`
	MoveInDate         time.Time `json:"move_in_date"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type ListParams struct {
	Page       int
	PageSize   int
	Status     string
	PropertyID string
}

func (p *ListParams) Normalize() {
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

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToApplicationResponse(a *Application) ApplicationResponse {
	return ApplicationResponse{
		ID:                 a.ID,
		PropertyID:         a.PropertyID,
		TenantID:           a.TenantID,
		OwnerID:            a.OwnerID,
		Message:            a.Message,
		MonthlyRentOffered: a.MonthlyRentOffered,
		MoveInDate:         a.MoveInDate,
		Status:             a.Status,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func ToApplicationResponseList(apps []Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		responses = append(responses, ToApplicationResponse(&a))
	}
	return responses
}
