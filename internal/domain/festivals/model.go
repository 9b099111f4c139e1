package festivals

import (
	"time"

	"festival-app/internal/domain/users"
)

type Festival struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:120;not null;uniqueIndex:idx_festivals_name"`
	Description string `gorm:"type:text"`
	Venue       string `gorm:"size:200"`
	StartDate   *time.Time
	EndDate     *time.Time

	State State `gorm:"type:varchar(24);not null;default:'CREATED'"`

	Organizers []users.User `gorm:"many2many:festival_organizers;"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOrganizer reports whether the given user is on the festival's
// organizer roster. Organizers must be preloaded.
func (f *Festival) HasOrganizer(userID uint) bool {
	for _, o := range f.Organizers {
		if o.ID == userID {
			return true
		}
	}
	return false
}
