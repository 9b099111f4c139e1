package workflow

import (
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"festival-app/internal/domain/access"
	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
	"festival-app/internal/repository"
)

// FestivalWorkflow owns the festival lifecycle: creation, descriptive
// updates, and the phase transitions CREATED through ANNOUNCED. Every
// call is one atomic read-validate-write against the store.
type FestivalWorkflow struct {
	store repository.Store
	log   *zap.Logger
}

func NewFestivalWorkflow(store repository.Store, log *zap.Logger) *FestivalWorkflow {
	return &FestivalWorkflow{store: store, log: log}
}

type CreateFestivalInput struct {
	Name        string
	Description string
	Venue       string
	StartDate   *time.Time
	EndDate     *time.Time
}

type UpdateFestivalInput struct {
	Description *string
	Venue       *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// resolveActor loads the calling user and enforces the account status
// gate: an inactive account is unauthorized for every mutating call.
func resolveActor(s repository.Store, actorID uint) (*users.User, error) {
	u, err := s.UserByID(actorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("user %d not found", actorID)
		}
		return nil, err
	}
	if !u.Active() {
		return nil, forbiddenf("account is inactive")
	}
	return u, nil
}

func authorize(actor *users.User, action access.Action, facts access.Facts) error {
	if !access.Allows(*actor, action, facts) {
		return forbiddenf("role %s may not perform %s", actor.Role, action)
	}
	return nil
}

func loadFestival(s repository.Store, id uint) (*festivals.Festival, error) {
	f, err := s.FestivalByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundf("festival %d not found", id)
		}
		return nil, err
	}
	return f, nil
}

func validDateRange(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !end.Before(*start)
}

// Create registers a new festival in state CREATED. The creating
// organizer joins the festival's organizer set.
func (w *FestivalWorkflow) Create(actorID uint, in CreateFestivalInput) (*festivals.Festival, error) {
	var out *festivals.Festival
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		if err := authorize(actor, access.ActionFestivalCreate, access.Facts{}); err != nil {
			return err
		}
		if in.Name == "" {
			return validationf("festival name is required")
		}
		if !validDateRange(in.StartDate, in.EndDate) {
			return validationf("festival end date precedes start date")
		}

		if _, err := s.FestivalByName(in.Name); err == nil {
			return conflictf("festival %q already exists", in.Name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		f := &festivals.Festival{
			Name:        in.Name,
			Description: in.Description,
			Venue:       in.Venue,
			StartDate:   in.StartDate,
			EndDate:     in.EndDate,
			State:       festivals.StateCreated,
		}
		if err := s.CreateFestival(f); err != nil {
			return err
		}
		if actor.Role == users.RoleOrganizer {
			if err := s.AddOrganizer(f, actor); err != nil {
				return err
			}
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.log.Info("festival created", zap.Uint("festival_id", out.ID), zap.String("name", out.Name))
	return out, nil
}

// Update rewrites descriptive fields. Allowed in every phase except
// ANNOUNCED, where the festival is locked.
func (w *FestivalWorkflow) Update(actorID, festivalID uint, in UpdateFestivalInput) (*festivals.Festival, error) {
	var out *festivals.Festival
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		f, err := loadFestival(s, festivalID)
		if err != nil {
			return err
		}
		facts := access.Facts{IsOrganizer: f.HasOrganizer(actor.ID)}
		if err := authorize(actor, access.ActionFestivalUpdate, facts); err != nil {
			return err
		}
		if f.State == festivals.StateAnnounced {
			return lockedf("festival is announced and can no longer be edited")
		}

		if in.Description != nil {
			f.Description = *in.Description
		}
		if in.Venue != nil {
			f.Venue = *in.Venue
		}
		if in.StartDate != nil {
			f.StartDate = in.StartDate
		}
		if in.EndDate != nil {
			f.EndDate = in.EndDate
		}
		if !validDateRange(f.StartDate, f.EndDate) {
			return validationf("festival end date precedes start date")
		}

		if err := s.SaveFestival(f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// advance moves the festival exactly one step forward into target.
func (w *FestivalWorkflow) advance(actorID, festivalID uint, target festivals.State) (*festivals.Festival, error) {
	var out *festivals.Festival
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		f, err := loadFestival(s, festivalID)
		if err != nil {
			return err
		}
		facts := access.Facts{IsOrganizer: f.HasOrganizer(actor.ID)}
		if err := authorize(actor, access.ActionFestivalTransition, facts); err != nil {
			return err
		}
		if !f.State.CanAdvanceTo(target) {
			required, _ := festivals.RequiredBefore(target)
			return preconditionf("festival must be in %s to enter %s (currently %s)", required, target, f.State)
		}

		f.State = target
		if err := s.SaveFestival(f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.log.Info("festival advanced",
		zap.Uint("festival_id", out.ID),
		zap.String("state", string(out.State)))
	return out, nil
}

func (w *FestivalWorkflow) StartSubmission(actorID, festivalID uint) (*festivals.Festival, error) {
	return w.advance(actorID, festivalID, festivals.StateSubmission)
}

func (w *FestivalWorkflow) StartAssignment(actorID, festivalID uint) (*festivals.Festival, error) {
	return w.advance(actorID, festivalID, festivals.StateAssignment)
}

func (w *FestivalWorkflow) StartReview(actorID, festivalID uint) (*festivals.Festival, error) {
	return w.advance(actorID, festivalID, festivals.StateReview)
}

func (w *FestivalWorkflow) StartScheduling(actorID, festivalID uint) (*festivals.Festival, error) {
	return w.advance(actorID, festivalID, festivals.StateScheduling)
}

func (w *FestivalWorkflow) StartFinalSubmission(actorID, festivalID uint) (*festivals.Festival, error) {
	return w.advance(actorID, festivalID, festivals.StateFinalSubmission)
}

func (w *FestivalWorkflow) Announce(actorID, festivalID uint) (*festivals.Festival, error) {
	return w.advance(actorID, festivalID, festivals.StateAnnounced)
}

// StartDecision moves the festival into DECISION and cascades onto its
// children: every performance still in APPROVED that never filed a final
// submission is auto-rejected. The cascade and the phase change commit
// together against one consistent snapshot of the children.
func (w *FestivalWorkflow) StartDecision(actorID, festivalID uint) (*festivals.Festival, []string, error) {
	var out *festivals.Festival
	var autoRejected []string
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		f, err := loadFestival(s, festivalID)
		if err != nil {
			return err
		}
		facts := access.Facts{IsOrganizer: f.HasOrganizer(actor.ID)}
		if err := authorize(actor, access.ActionFestivalTransition, facts); err != nil {
			return err
		}
		if !f.State.CanAdvanceTo(festivals.StateDecision) {
			return preconditionf("festival must be in %s to enter %s (currently %s)",
				festivals.StateFinalSubmission, festivals.StateDecision, f.State)
		}

		children, err := s.PerformancesByFestival(f.ID)
		if err != nil {
			return err
		}
		for i := range children {
			p := &children[i]
			if p.State != performances.StateApproved {
				continue
			}
			p.State = performances.StateRejected
			p.RejectionReason = "no final submission before decision"
			if err := s.SavePerformance(p); err != nil {
				return err
			}
			autoRejected = append(autoRejected, p.Name)
		}
		sort.Strings(autoRejected)

		f.State = festivals.StateDecision
		if err := s.SaveFestival(f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	w.log.Info("festival entered decision",
		zap.Uint("festival_id", out.ID),
		zap.Int("auto_rejected", len(autoRejected)))
	return out, autoRejected, nil
}
