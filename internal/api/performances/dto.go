package performances

import (
	"festival-app/internal/domain/performances"
)

type CreatePerformanceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
}

type ReviewRequest struct {
	Score    *int   `json:"score"`
	Comments string `json:"comments"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

type FinalSubmitRequest struct {
	Setlist          []string `json:"setlist"`
	RehearsalSlots   []string `json:"rehearsal_slots"`
	PerformanceSlots []string `json:"performance_slots"`
}

type AssignStaffRequest struct {
	StaffID uint `json:"staff_id" binding:"required"`
}

type AddBandMemberRequest struct {
	Username string `json:"username" binding:"required"`
}

type BandMemberDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type PerformanceDTO struct {
	ID         uint   `json:"id"`
	FestivalID uint   `json:"festival_id"`
	Name       string `json:"name"`

	Description string `json:"description,omitempty"`
	Genre       string `json:"genre,omitempty"`

	CreatorID uint  `json:"creator_id"`
	StaffID   *uint `json:"staff_id,omitempty"`

	State string `json:"state"`

	ReviewScore    *int   `json:"review_score,omitempty"`
	ReviewComments string `json:"review_comments,omitempty"`

	RejectionReason string `json:"rejection_reason,omitempty"`

	Setlist          []string `json:"setlist,omitempty"`
	RehearsalSlots   []string `json:"rehearsal_slots,omitempty"`
	PerformanceSlots []string `json:"performance_slots,omitempty"`

	BandMembers []BandMemberDTO `json:"band_members,omitempty"`
}

func toPerformanceDTO(p *performances.Performance) PerformanceDTO {
	dto := PerformanceDTO{
		ID:               p.ID,
		FestivalID:       p.FestivalID,
		Name:             p.Name,
		Description:      p.Description,
		Genre:            p.Genre,
		CreatorID:        p.CreatorID,
		StaffID:          p.StaffID,
		State:            string(p.State),
		ReviewScore:      p.ReviewScore,
		ReviewComments:   p.ReviewComments,
		RejectionReason:  p.RejectionReason,
		Setlist:          p.Setlist,
		RehearsalSlots:   p.RehearsalSlots,
		PerformanceSlots: p.PerformanceSlots,
	}
	for _, m := range p.BandMembers {
		dto.BandMembers = append(dto.BandMembers, BandMemberDTO{ID: m.ID, Username: m.Username})
	}
	return dto
}
