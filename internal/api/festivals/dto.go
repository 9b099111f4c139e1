package festivals

import (
	"time"

	"festival-app/internal/domain/festivals"
)

type CreateFestivalRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Venue       string     `json:"venue"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateFestivalRequest struct {
	Description *string    `json:"description"`
	Venue       *string    `json:"venue"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type OrganizerDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type FestivalDTO struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Venue       string         `json:"venue,omitempty"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
	State       string         `json:"state"`
	Organizers  []OrganizerDTO `json:"organizers,omitempty"`
}

func toFestivalDTO(f *festivals.Festival) FestivalDTO {
	dto := FestivalDTO{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Venue:       f.Venue,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		State:       string(f.State),
	}
	for _, o := range f.Organizers {
		dto.Organizers = append(dto.Organizers, OrganizerDTO{ID: o.ID, Username: o.Username})
	}
	return dto
}
