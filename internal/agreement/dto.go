// AngelaMos | 2026
// dto.go

package agreement

import (
	"time"
)

type CreateAgreementRequest struct {
	ApplicationID   string    `json:"application_id" validate:"required,uuid4"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	MonthlyRent     int64     `json:"monthly_rent" validate:"required,gte=1000"`
	SecurityDeposit int64     `json:"security_deposit" validate:"gte=0"`
	LockInMonths    int       `json:"lock_in_months" validate:"gte=0,lte=36"`
	Terms           string    `json:"terms" validate:"omitempty,max=5000"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed terminated"`
}

type AgreementResponse struct {
	ID              string    `json:"id"`
	ApplicationID   string    `json:"application_id"`
	PropertyID      string    `json:"property_id"`
	TenantID        string    `json:"tenant_id"`
	OwnerID         string    `json:"owner_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	MonthlyRent     int64     `json:"monthly_rent"`
	SecurityDeposit int64     `json:"security_deposit"`
	LockInMonths    int       `json:"lock_in_months"`
	Terms           string    `json:"terms"`
	SignedByTenant  bool      `json:"signed_by_tenant"`
	SignedByOwner   bool      `json:"signed_by_owner"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ListParams struct {
	Page     int
	PageSize int
	Status   string
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

func ToAgreementResponse(a *Agreement) AgreementResponse {
	return AgreementResponse{
		ID:              a.ID,
		ApplicationID:   a.ApplicationID,
		PropertyID:      a.PropertyID,
		TenantID:        a.TenantID,
		OwnerID:         a.OwnerID,
		StartDate:       a.StartDate,
		EndDate:         a.EndDate,
		MonthlyRent:     a.MonthlyRent,
		SecurityDeposit: a.SecurityDeposit,
		LockInMonths:    a.LockInMonths,
		Terms:           a.Terms,
		SignedByTenant:  a.SignedByTenant,
		SignedByOwner:   a.SignedByOwner,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func ToAgreementResponseList(agreements []Agreement) []AgreementResponse {
	responses := make([]AgreementResponse, 0, len(agreements))
	for _, a := range agreements {
		responses = append(responses, ToAgreementResponse(&a))
	}
	return responses
}
