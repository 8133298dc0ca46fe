// AngelaMos | 2026
// dto.go

package visit

import (
	"time"
)

type CreateVisitRequest struct {
	PreferredAt time.Time `json:"preferred_at" validate:"required"`
	Notes       string    `json:"notes"        validate:"omitempty,max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed cancelled"`
}

type VisitResponse struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"property_id"`
	TenantID    string    `json:"tenant_id"`
	OwnerID     string    `json:"owner_id"`
	PreferredAt time.Time `json:"preferred_at"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
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

func ToVisitResponse(v *Visit) VisitResponse {
	return VisitResponse{
		ID:          v.ID,
		PropertyID:  v.PropertyID,
		TenantID:    v.TenantID,
		OwnerID:     v.OwnerID,
		PreferredAt: v.PreferredAt,
		Notes:       v.Notes,
		Status:      v.Status,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func ToVisitResponseList(visits []Visit) []VisitResponse {
	responses := make([]VisitResponse, 0, len(visits))
	for _, v := range visits {
		responses = append(responses, ToVisitResponse(&v))
	}
	return responses
}
