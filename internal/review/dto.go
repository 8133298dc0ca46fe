// AngelaMos | 2026
// dto.go

package review

type CreateReviewRequest struct {
	TargetPropertyID *string `json:"target_property_id" validate:"omitempty,uuid4"`
	TargetUserID     *string `json:"target_user_id" validate:"omitempty,uuid4"`
	Rating           int     `json:"rating" validate:"required,min=1,max=5"`
	Comment          string  `json:"comment" validate:"omitempty,max=500"`
}

type ListParams struct {
	Page     int
	PageSize int
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

type RatingSummary struct {
	Average float64 `db:"average" json:"average"`
	Count   int     `db:"count" json:"count"`
}
