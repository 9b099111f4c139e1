package workflow

import (
	"errors"

	"go.uber.org/zap"

	"festival-app/internal/domain/access"
	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
	"festival-app/internal/repository"
)

// PerformanceWorkflow owns the performance lifecycle. Every transition's
// legality depends jointly on the performance's own state and its parent
// festival's phase, so each call loads both entities inside one atomic
// block and validates them together.
type PerformanceWorkflow struct {
	store repository.Store
	log   *zap.Logger
}

func NewPerformanceWorkflow(store repository.Store, log *zap.Logger) *PerformanceWorkflow {
	return &PerformanceWorkflow{store: store, log: log}
}

type CreatePerformanceInput struct {
	Name        string
	Description string
	Genre       string
}

type ReviewInput struct {
	Score    *int
	Comments string
}

type FinalSubmissionInput struct {
	Setlist          []string
	RehearsalSlots   []string
	PerformanceSlots []string
}

func loadPerformance(s repository.Store, id uint) (*performances.Performance, *festivals.Festival, error) {
	p, err := s.PerformanceByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, notFoundf("performance %d not found", id)
		}
		return nil, nil, err
	}
	f, err := loadFestival(s, p.FestivalID)
	if err != nil {
		return nil, nil, err
	}
	return p, f, nil
}

func performanceFacts(actor *users.User, p *performances.Performance, f *festivals.Festival) access.Facts {
	return access.Facts{
		IsCreator:       p.CreatorID == actor.ID,
		IsAssignedStaff: p.StaffID != nil && *p.StaffID == actor.ID,
		IsOrganizer:     f.HasOrganizer(actor.ID),
	}
}

// Create registers a new performance under a festival. The registration
// window is open while the festival is in CREATED or SUBMISSION.
func (w *PerformanceWorkflow) Create(actorID, festivalID uint, in CreatePerformanceInput) (*performances.Performance, error) {
	var out *performances.Performance
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		f, err := loadFestival(s, festivalID)
		if err != nil {
			return err
		}
		if err := authorize(actor, access.ActionPerformanceCreate, access.Facts{}); err != nil {
			return err
		}
		if f.State != festivals.StateCreated && f.State != festivals.StateSubmission {
			return preconditionf("festival %q no longer accepts performances (currently %s)", f.Name, f.State)
		}
		if in.Name == "" {
			return validationf("performance name is required")
		}

		if _, err := s.PerformanceByName(f.ID, in.Name); err == nil {
			return conflictf("performance %q already exists in festival %q", in.Name, f.Name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		p := &performances.Performance{
			FestivalID:  f.ID,
			Name:        in.Name,
			Description: in.Description,
			Genre:       in.Genre,
			CreatorID:   actor.ID,
			State:       performances.StateCreated,
		}
		if err := s.CreatePerformance(p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.log.Info("performance created",
		zap.Uint("performance_id", out.ID),
		zap.Uint("festival_id", out.FestivalID))
	return out, nil
}

// Submit moves CREATED -> SUBMITTED while the festival's submission
// window is open. Creator only.
func (w *PerformanceWorkflow) Submit(actorID, performanceID uint) (*performances.Performance, error) {
	return w.transition(actorID, performanceID, access.ActionPerformanceSubmit,
		func(p *performances.Performance, f *festivals.Festival) error {
			if !p.State.CanTransitionTo(performances.StateSubmitted) {
				return preconditionf("performance must be in %s to submit (currently %s)",
					performances.StateCreated, p.State)
			}
			if f.State != festivals.StateSubmission {
				return preconditionf("festival must be in %s to accept submissions (currently %s)",
					festivals.StateSubmission, f.State)
			}
			p.State = performances.StateSubmitted
			return nil
		})
}

// Review records score and comments and moves SUBMITTED -> REVIEWED.
// Caller must be the assigned staff member or a festival organizer.
func (w *PerformanceWorkflow) Review(actorID, performanceID uint, in ReviewInput) (*performances.Performance, error) {
	return w.transition(actorID, performanceID, access.ActionPerformanceReview,
		func(p *performances.Performance, f *festivals.Festival) error {
			if !p.State.CanTransitionTo(performances.StateReviewed) {
				return preconditionf("performance must be in %s to review (currently %s)",
					performances.StateSubmitted, p.State)
			}
			if f.State != festivals.StateReview {
				return preconditionf("festival must be in %s for reviews (currently %s)",
					festivals.StateReview, f.State)
			}
			if in.Score == nil {
				return validationf("review score is required")
			}
			if in.Comments == "" {
				return validationf("review comments are required")
			}
			p.ReviewScore = in.Score
			p.ReviewComments = in.Comments
			p.State = performances.StateReviewed
			return nil
		})
}

// Approve moves REVIEWED -> APPROVED once the festival has entered
// SCHEDULING. Organizer only.
func (w *PerformanceWorkflow) Approve(actorID, performanceID uint) (*performances.Performance, error) {
	return w.transition(actorID, performanceID, access.ActionPerformanceApprove,
		func(p *performances.Performance, f *festivals.Festival) error {
			if !p.State.CanTransitionTo(performances.StateApproved) {
				return preconditionf("performance must be in %s to approve (currently %s)",
					performances.StateReviewed, p.State)
			}
			if f.State != festivals.StateScheduling {
				return preconditionf("festival must be in %s to approve performances (currently %s)",
					festivals.StateScheduling, f.State)
			}
			p.State = performances.StateApproved
			return nil
		})
}

// Reject moves APPROVED -> REJECTED. During SCHEDULING it requires a
// review score below the threshold; during DECISION it applies to
// performances that never filed a final submission. Organizer only.
func (w *PerformanceWorkflow) Reject(actorID, performanceID uint, reason string) (*performances.Performance, error) {
	return w.transition(actorID, performanceID, access.ActionPerformanceReject,
		func(p *performances.Performance, f *festivals.Festival) error {
			if !p.State.CanTransitionTo(performances.StateRejected) {
				return preconditionf("performance must be in %s to reject (currently %s)",
					performances.StateApproved, p.State)
			}
			switch f.State {
			case festivals.StateScheduling:
				if p.ReviewScore == nil || *p.ReviewScore >= performances.RejectionScoreThreshold {
					return preconditionf("review score must be below %d to reject during %s",
						performances.RejectionScoreThreshold, festivals.StateScheduling)
				}
			case festivals.StateDecision:
				// APPROVED without a final submission; nothing further to check.
			default:
				return preconditionf("festival must be in %s or %s to reject performances (currently %s)",
					festivals.StateScheduling, festivals.StateDecision, f.State)
			}
			if reason == "" {
				return validationf("rejection reason is required")
			}
			p.RejectionReason = reason
			p.State = performances.StateRejected
			return nil
		})
}

// FinalSubmit moves APPROVED -> FINAL_SUBMITTED with the setlist and
// slot preferences. Self-service by the creator, in any festival phase.
func (w *PerformanceWorkflow) FinalSubmit(actorID, performanceID uint, in FinalSubmissionInput) (*performances.Performance, error) {
	return w.transition(actorID, performanceID, access.ActionPerformanceFinalSubmit,
		func(p *performances.Performance, f *festivals.Festival) error {
			if !p.State.CanTransitionTo(performances.StateFinalSubmitted) {
				return preconditionf("performance must be in %s for final submission (currently %s)",
					performances.StateApproved, p.State)
			}
			if len(in.Setlist) == 0 {
				return validationf("setlist is required")
			}
			if len(in.RehearsalSlots) == 0 {
				return validationf("rehearsal slot preferences are required")
			}
			if len(in.PerformanceSlots) == 0 {
				return validationf("performance slot preferences are required")
			}
			p.Setlist = in.Setlist
			p.RehearsalSlots = in.RehearsalSlots
			p.PerformanceSlots = in.PerformanceSlots
			p.State = performances.StateFinalSubmitted
			return nil
		})
}

// Accept schedules a performance during DECISION. Approval is durable:
// both APPROVED survivors and FINAL_SUBMITTED performances qualify.
func (w *PerformanceWorkflow) Accept(actorID, performanceID uint) (*performances.Performance, error) {
	return w.transition(actorID, performanceID, access.ActionPerformanceAccept,
		func(p *performances.Performance, f *festivals.Festival) error {
			if !p.State.CanTransitionTo(performances.StateScheduled) {
				return preconditionf("performance must be in %s or %s to accept (currently %s)",
					performances.StateApproved, performances.StateFinalSubmitted, p.State)
			}
			if f.State != festivals.StateDecision {
				return preconditionf("festival must be in %s to accept performances (currently %s)",
					festivals.StateDecision, f.State)
			}
			p.State = performances.StateScheduled
			return nil
		})
}

// Withdraw deletes a performance that has not yet been submitted.
// Creator only.
func (w *PerformanceWorkflow) Withdraw(actorID, performanceID uint) error {
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		p, f, err := loadPerformance(s, performanceID)
		if err != nil {
			return err
		}
		if err := authorize(actor, access.ActionPerformanceWithdraw, performanceFacts(actor, p, f)); err != nil {
			return err
		}
		if p.State != performances.StateCreated {
			return preconditionf("performance can only be withdrawn from %s (currently %s)",
				performances.StateCreated, p.State)
		}
		return s.DeletePerformance(p)
	})
	if err != nil {
		return err
	}
	w.log.Info("performance withdrawn", zap.Uint("performance_id", performanceID))
	return nil
}

// AssignStaff attaches a staff member as the performance's reviewer.
// Does not change the performance's state.
func (w *PerformanceWorkflow) AssignStaff(actorID, performanceID, staffID uint) (*performances.Performance, error) {
	var out *performances.Performance
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		p, f, err := loadPerformance(s, performanceID)
		if err != nil {
			return err
		}
		if err := authorize(actor, access.ActionPerformanceAssignStaff, performanceFacts(actor, p, f)); err != nil {
			return err
		}
		staff, err := s.UserByID(staffID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundf("user %d not found", staffID)
			}
			return err
		}
		if staff.Role != users.RoleStaff {
			return validationf("user %q does not hold the staff role", staff.Username)
		}
		p.StaffID = &staff.ID
		if err := s.SavePerformance(p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddBandMember adds a user, looked up by username, to the roster. The
// member's role is upgraded to ARTIST when they only hold the base role.
func (w *PerformanceWorkflow) AddBandMember(actorID, performanceID uint, username string) (*performances.Performance, error) {
	var out *performances.Performance
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		p, f, err := loadPerformance(s, performanceID)
		if err != nil {
			return err
		}
		if err := authorize(actor, access.ActionPerformanceAddMember, performanceFacts(actor, p, f)); err != nil {
			return err
		}
		member, err := s.UserByUsername(username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundf("user %q not found", username)
			}
			return err
		}
		if p.IsBandMember(member.ID) {
			return conflictf("user %q is already a band member", username)
		}

		if member.Role == users.RoleUser {
			member.Role = users.RoleArtist
			if err := s.SaveUser(member); err != nil {
				return err
			}
		}
		if err := s.AddBandMember(p, member); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transition is the shared shape of a guarded performance transition:
// resolve actor, load performance and parent festival, authorize, apply
// the guard+mutation, persist.
func (w *PerformanceWorkflow) transition(
	actorID, performanceID uint,
	action access.Action,
	apply func(p *performances.Performance, f *festivals.Festival) error,
) (*performances.Performance, error) {
	var out *performances.Performance
	err := w.store.Atomically(func(s repository.Store) error {
		actor, err := resolveActor(s, actorID)
		if err != nil {
			return err
		}
		p, f, err := loadPerformance(s, performanceID)
		if err != nil {
			return err
		}
		if err := authorize(actor, action, performanceFacts(actor, p, f)); err != nil {
			return err
		}
		if err := apply(p, f); err != nil {
			return err
		}
		if err := s.SavePerformance(p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	w.log.Info("performance transitioned",
		zap.Uint("performance_id", out.ID),
		zap.String("state", string(out.State)))
	return out, nil
}
