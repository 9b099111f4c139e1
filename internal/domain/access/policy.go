package access

import (
	"festival-app/internal/domain/users"
)

// Action names a workflow operation gated by the authorization policy.
type Action string

const (
	ActionFestivalCreate     Action = "festival.create"
	ActionFestivalUpdate     Action = "festival.update"
	ActionFestivalTransition Action = "festival.transition"

	ActionPerformanceCreate      Action = "performance.create"
	ActionPerformanceSubmit      Action = "performance.submit"
	ActionPerformanceReview      Action = "performance.review"
	ActionPerformanceApprove     Action = "performance.approve"
	ActionPerformanceReject      Action = "performance.reject"
	ActionPerformanceFinalSubmit Action = "performance.final-submit"
	ActionPerformanceAccept      Action = "performance.accept"
	ActionPerformanceWithdraw    Action = "performance.withdraw"
	ActionPerformanceAssignStaff Action = "performance.assign-staff"
	ActionPerformanceAddMember   Action = "performance.add-band-member"
)

// Ownership is the identity requirement attached to a rule, checked
// against facts the workflow derives from the loaded entities.
type Ownership int

const (
	OwnAnyone Ownership = iota
	OwnCreator
	OwnOrganizer
	OwnStaffOrOrganizer
)

type Rule struct {
	Roles     []users.Role
	Ownership Ownership
}

// Facts carries the actor/entity relationships relevant to a decision.
type Facts struct {
	IsCreator       bool
	IsAssignedStaff bool
	IsOrganizer     bool
}

// rules is the complete allow-list: one row per gated action. ADMIN
// bypasses the table entirely; INACTIVE accounts are denied before it is
// consulted.
var rules = map[Action]Rule{
	ActionFestivalCreate:     {Roles: []users.Role{users.RoleOrganizer}},
	ActionFestivalUpdate:     {Roles: []users.Role{users.RoleOrganizer}, Ownership: OwnOrganizer},
	ActionFestivalTransition: {Roles: []users.Role{users.RoleOrganizer}, Ownership: OwnOrganizer},

	ActionPerformanceCreate:      {Roles: []users.Role{users.RoleArtist}},
	ActionPerformanceSubmit:      {Roles: []users.Role{users.RoleArtist}, Ownership: OwnCreator},
	ActionPerformanceReview:      {Roles: []users.Role{users.RoleStaff, users.RoleOrganizer}, Ownership: OwnStaffOrOrganizer},
	ActionPerformanceApprove:     {Roles: []users.Role{users.RoleOrganizer}, Ownership: OwnOrganizer},
	ActionPerformanceReject:      {Roles: []users.Role{users.RoleOrganizer}, Ownership: OwnOrganizer},
	ActionPerformanceFinalSubmit: {Roles: []users.Role{users.RoleArtist}, Ownership: OwnCreator},
	ActionPerformanceAccept:      {Roles: []users.Role{users.RoleOrganizer}, Ownership: OwnOrganizer},
	ActionPerformanceWithdraw:    {Roles: []users.Role{users.RoleArtist}, Ownership: OwnCreator},
	ActionPerformanceAssignStaff: {Roles: []users.Role{users.RoleOrganizer}, Ownership: OwnOrganizer},
	ActionPerformanceAddMember:   {Roles: []users.Role{users.RoleArtist}, Ownership: OwnCreator},
}

// Allows is the policy decision function. It is pure: all inputs arrive
// as arguments, nothing is loaded here.
func Allows(actor users.User, action Action, facts Facts) bool {
	if !actor.Active() {
		return false
	}
	if actor.Role == users.RoleAdmin {
		return true
	}

	rule, ok := rules[action]
	if !ok {
		return false
	}

	roleOK := false
	for _, r := range rule.Roles {
		if actor.Role == r {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return false
	}

	switch rule.Ownership {
	case OwnAnyone:
		return true
	case OwnCreator:
		return facts.IsCreator
	case OwnOrganizer:
		return facts.IsOrganizer
	case OwnStaffOrOrganizer:
		return facts.IsAssignedStaff || facts.IsOrganizer
	}
	return false
}
