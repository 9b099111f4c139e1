package performances

import (
	"time"

	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/users"
)

type Performance struct {
	ID         uint                `gorm:"primaryKey"`
	FestivalID uint                `gorm:"not null;index;uniqueIndex:idx_performances_festival_name"`
	Festival   *festivals.Festival `gorm:"foreignKey:FestivalID"`
	Name       string              `gorm:"size:120;not null;uniqueIndex:idx_performances_festival_name"`

	Description string `gorm:"type:text"`
	Genre       string `gorm:"size:64"`

	CreatorID uint  `gorm:"not null;index"`
	StaffID   *uint `gorm:"index"`

	State State `gorm:"type:varchar(24);not null;default:'CREATED'"`

	// Review record, set when the performance moves to REVIEWED.
	ReviewScore    *int
	ReviewComments string `gorm:"type:text"`

	RejectionReason string `gorm:"type:text"`

	// Final-submission payload.
	Setlist          []string `gorm:"serializer:json"`
	RehearsalSlots   []string `gorm:"serializer:json"`
	PerformanceSlots []string `gorm:"serializer:json"`

	BandMembers []users.User `gorm:"many2many:performance_band_members;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RejectionScoreThreshold is the review score below which an organizer may
// reject an approved performance during SCHEDULING.
const RejectionScoreThreshold = 5

// IsBandMember reports whether the given user is already on the roster.
// BandMembers must be preloaded.
func (p *Performance) IsBandMember(userID uint) bool {
	for _, m := range p.BandMembers {
		if m.ID == userID {
			return true
		}
	}
	return false
}
