package workflow_test

import (
	"errors"
	"sync"
	"testing"

	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
	"festival-app/internal/repository"
	"festival-app/internal/workflow"
)

func TestCreatePerformance(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)

	p, err := e.pw.Create(artist.ID, f.ID, workflow.CreatePerformanceInput{Name: "Alpha", Genre: "rock"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.State != performances.StateCreated {
		t.Errorf("state = %s, want %s", p.State, performances.StateCreated)
	}
	if p.CreatorID != artist.ID {
		t.Errorf("creator = %d, want %d", p.CreatorID, artist.ID)
	}
}

func TestCreatePerformanceWindowClosed(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateAssignment, org)

	_, err := e.pw.Create(artist.ID, f.ID, workflow.CreatePerformanceInput{Name: "Alpha"})
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestCreatePerformanceAuthorization(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	plain := e.user(t, "pat", users.RoleUser)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)

	_, err := e.pw.Create(plain.ID, f.ID, workflow.CreatePerformanceInput{Name: "Alpha"})
	wantKind(t, err, workflow.KindForbidden)
}

func TestPerformanceNameUniquePerFestival(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f1 := e.festival(t, "Summer Jam", festivals.StateSubmission, org)
	f2 := e.festival(t, "Winter Jam", festivals.StateSubmission, org)

	if _, err := e.pw.Create(artist.ID, f1.ID, workflow.CreatePerformanceInput{Name: "Alpha"}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := e.pw.Create(artist.ID, f1.ID, workflow.CreatePerformanceInput{Name: "Alpha"})
	wantKind(t, err, workflow.KindConflict)

	// same name under another festival is fine
	if _, err := e.pw.Create(artist.ID, f2.ID, workflow.CreatePerformanceInput{Name: "Alpha"}); err != nil {
		t.Fatalf("create under second festival: %v", err)
	}
}

func TestSubmit(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	other := e.user(t, "bob", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateCreated, artist)

	// only the creator may submit
	_, err := e.pw.Submit(other.ID, p.ID)
	wantKind(t, err, workflow.KindForbidden)

	got, err := e.pw.Submit(artist.ID, p.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got.State != performances.StateSubmitted {
		t.Errorf("state = %s, want %s", got.State, performances.StateSubmitted)
	}

	// resubmission bounces
	_, err = e.pw.Submit(artist.ID, p.ID)
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestSubmitOutsideSubmissionPhase(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateAssignment, org)
	p := e.performance(t, f, "Alpha", performances.StateCreated, artist)

	_, err := e.pw.Submit(artist.ID, p.ID)
	wantKind(t, err, workflow.KindPreconditionFailed)

	if got := e.reloadPerformance(t, p.ID); got.State != performances.StateCreated {
		t.Errorf("state mutated on failed submit: %s", got.State)
	}
}

func TestReview(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	staff := e.user(t, "sia", users.RoleStaff)
	f := e.festival(t, "Summer Jam", festivals.StateReview, org)
	p := e.performance(t, f, "Alpha", performances.StateSubmitted, artist)
	p.StaffID = &staff.ID
	if err := e.store.SavePerformance(p); err != nil {
		t.Fatalf("assign staff: %v", err)
	}

	// empty comments rejected regardless of caller
	_, err := e.pw.Review(staff.ID, p.ID, workflow.ReviewInput{Score: intp(7)})
	wantKind(t, err, workflow.KindValidationFailed)
	_, err = e.pw.Review(org.ID, p.ID, workflow.ReviewInput{Score: intp(7)})
	wantKind(t, err, workflow.KindValidationFailed)

	// missing score rejected
	_, err = e.pw.Review(staff.ID, p.ID, workflow.ReviewInput{Comments: "tight set"})
	wantKind(t, err, workflow.KindValidationFailed)

	got, err := e.pw.Review(staff.ID, p.ID, workflow.ReviewInput{Score: intp(7), Comments: "tight set"})
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	if got.State != performances.StateReviewed {
		t.Errorf("state = %s, want %s", got.State, performances.StateReviewed)
	}
	if got.ReviewScore == nil || *got.ReviewScore != 7 || got.ReviewComments != "tight set" {
		t.Errorf("review record not set: %+v", got)
	}
}

func TestReviewAuthorization(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	unassigned := e.user(t, "uma", users.RoleStaff)
	f := e.festival(t, "Summer Jam", festivals.StateReview, org)
	p := e.performance(t, f, "Alpha", performances.StateSubmitted, artist)

	// staff not assigned to this performance
	_, err := e.pw.Review(unassigned.ID, p.ID, workflow.ReviewInput{Score: intp(5), Comments: "ok"})
	wantKind(t, err, workflow.KindForbidden)

	// the creator cannot review their own act
	_, err = e.pw.Review(artist.ID, p.ID, workflow.ReviewInput{Score: intp(10), Comments: "great"})
	wantKind(t, err, workflow.KindForbidden)

	// a festival organizer can review without assignment
	if _, err := e.pw.Review(org.ID, p.ID, workflow.ReviewInput{Score: intp(5), Comments: "ok"}); err != nil {
		t.Fatalf("organizer review: %v", err)
	}
}

func TestReviewOutsideReviewPhase(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateSubmitted, artist)

	_, err := e.pw.Review(org.ID, p.ID, workflow.ReviewInput{Score: intp(5), Comments: "ok"})
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestApprove(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateScheduling, org)
	p := e.performance(t, f, "Alpha", performances.StateReviewed, artist)

	got, err := e.pw.Approve(org.ID, p.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if got.State != performances.StateApproved {
		t.Errorf("state = %s, want %s", got.State, performances.StateApproved)
	}
}

func TestApproveRequiresReviewedAndScheduling(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)

	// not reviewed yet
	f1 := e.festival(t, "Summer Jam", festivals.StateScheduling, org)
	p1 := e.performance(t, f1, "Alpha", performances.StateSubmitted, artist)
	_, err := e.pw.Approve(org.ID, p1.ID)
	wantKind(t, err, workflow.KindPreconditionFailed)

	// festival not in scheduling
	f2 := e.festival(t, "Winter Jam", festivals.StateReview, org)
	p2 := e.performance(t, f2, "Beta", performances.StateReviewed, artist)
	_, err = e.pw.Approve(org.ID, p2.ID)
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestConcurrentApproveAppliesOnce(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateScheduling, org)
	p := e.performance(t, f, "Alpha", performances.StateReviewed, artist)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = e.pw.Approve(org.ID, p.ID)
		}(i)
	}
	wg.Wait()

	var succeeded, failed int
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		failed++
		wantKind(t, err, workflow.KindPreconditionFailed)
	}
	if succeeded != 1 || failed != 1 {
		t.Fatalf("succeeded = %d, failed = %d; want exactly one of each", succeeded, failed)
	}
	if got := e.reloadPerformance(t, p.ID); got.State != performances.StateApproved {
		t.Errorf("state = %s, want %s", got.State, performances.StateApproved)
	}
}

func TestRejectDuringScheduling(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateScheduling, org)

	// score at the threshold is not rejectable
	p1 := e.performance(t, f, "Alpha", performances.StateApproved, artist)
	p1.ReviewScore = intp(performances.RejectionScoreThreshold)
	if err := e.store.SavePerformance(p1); err != nil {
		t.Fatal(err)
	}
	_, err := e.pw.Reject(org.ID, p1.ID, "not good enough")
	wantKind(t, err, workflow.KindPreconditionFailed)

	// below the threshold, with a reason, succeeds
	p2 := e.performance(t, f, "Beta", performances.StateApproved, artist)
	p2.ReviewScore = intp(3)
	if err := e.store.SavePerformance(p2); err != nil {
		t.Fatal(err)
	}
	got, err := e.pw.Reject(org.ID, p2.ID, "weak audition")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.State != performances.StateRejected || got.RejectionReason != "weak audition" {
		t.Errorf("reject not applied: %+v", got)
	}

	// missing reason is a validation failure
	p3 := e.performance(t, f, "Gamma", performances.StateApproved, artist)
	p3.ReviewScore = intp(2)
	if err := e.store.SavePerformance(p3); err != nil {
		t.Fatal(err)
	}
	_, err = e.pw.Reject(org.ID, p3.ID, "")
	wantKind(t, err, workflow.KindValidationFailed)
}

func TestRejectDuringDecision(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateDecision, org)

	p := e.performance(t, f, "Alpha", performances.StateApproved, artist)
	got, err := e.pw.Reject(org.ID, p.ID, "no final submission")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if got.State != performances.StateRejected {
		t.Errorf("state = %s, want %s", got.State, performances.StateRejected)
	}

	// a final submission shields the performance
	shielded := e.performance(t, f, "Beta", performances.StateFinalSubmitted, artist)
	_, err = e.pw.Reject(org.ID, shielded.ID, "too late")
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestRejectOutsideWindows(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateReview, org)
	p := e.performance(t, f, "Alpha", performances.StateApproved, artist)
	p.ReviewScore = intp(1)
	if err := e.store.SavePerformance(p); err != nil {
		t.Fatal(err)
	}

	_, err := e.pw.Reject(org.ID, p.ID, "reason")
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestFinalSubmit(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateFinalSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateApproved, artist)

	in := workflow.FinalSubmissionInput{
		Setlist:          []string{"Opener", "Closer"},
		RehearsalSlots:   []string{"fri-am", "fri-pm"},
		PerformanceSlots: []string{"sat-main"},
	}

	// non-creator denied
	other := e.user(t, "bob", users.RoleArtist)
	_, err := e.pw.FinalSubmit(other.ID, p.ID, in)
	wantKind(t, err, workflow.KindForbidden)

	got, err := e.pw.FinalSubmit(artist.ID, p.ID, in)
	if err != nil {
		t.Fatalf("final-submit: %v", err)
	}
	if got.State != performances.StateFinalSubmitted {
		t.Errorf("state = %s, want %s", got.State, performances.StateFinalSubmitted)
	}
	if len(got.Setlist) != 2 || len(got.RehearsalSlots) != 2 || len(got.PerformanceSlots) != 1 {
		t.Errorf("final submission payload not stored: %+v", got)
	}
}

func TestFinalSubmitValidation(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateFinalSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateApproved, artist)

	tests := []workflow.FinalSubmissionInput{
		{RehearsalSlots: []string{"a"}, PerformanceSlots: []string{"b"}},
		{Setlist: []string{"a"}, PerformanceSlots: []string{"b"}},
		{Setlist: []string{"a"}, RehearsalSlots: []string{"b"}},
	}
	for _, in := range tests {
		_, err := e.pw.FinalSubmit(artist.ID, p.ID, in)
		wantKind(t, err, workflow.KindValidationFailed)
	}

	// only APPROVED performances may file
	sub := e.performance(t, f, "Beta", performances.StateSubmitted, artist)
	_, err := e.pw.FinalSubmit(artist.ID, sub.ID, workflow.FinalSubmissionInput{
		Setlist: []string{"a"}, RehearsalSlots: []string{"b"}, PerformanceSlots: []string{"c"},
	})
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestAccept(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateDecision, org)

	// approval is durable: both APPROVED and FINAL_SUBMITTED qualify
	p1 := e.performance(t, f, "Alpha", performances.StateApproved, artist)
	p2 := e.performance(t, f, "Beta", performances.StateFinalSubmitted, artist)

	for _, p := range []uint{p1.ID, p2.ID} {
		got, err := e.pw.Accept(org.ID, p)
		if err != nil {
			t.Fatalf("accept %d: %v", p, err)
		}
		if got.State != performances.StateScheduled {
			t.Errorf("state = %s, want %s", got.State, performances.StateScheduled)
		}
	}
}

func TestAcceptOutsideDecision(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateScheduling, org)
	p := e.performance(t, f, "Alpha", performances.StateApproved, artist)

	_, err := e.pw.Accept(org.ID, p.ID)
	wantKind(t, err, workflow.KindPreconditionFailed)
}

func TestWithdraw(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	other := e.user(t, "bob", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateCreated, artist)

	// wrong actor
	err := e.pw.Withdraw(other.ID, p.ID)
	wantKind(t, err, workflow.KindForbidden)

	// wrong state
	submitted := e.performance(t, f, "Beta", performances.StateSubmitted, artist)
	err = e.pw.Withdraw(artist.ID, submitted.ID)
	wantKind(t, err, workflow.KindPreconditionFailed)

	if err := e.pw.Withdraw(artist.ID, p.ID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if _, err := e.store.PerformanceByID(p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("performance should be deleted, got %v", err)
	}
}

func TestAssignStaff(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	staff := e.user(t, "sia", users.RoleStaff)
	f := e.festival(t, "Summer Jam", festivals.StateAssignment, org)
	p := e.performance(t, f, "Alpha", performances.StateSubmitted, artist)

	got, err := e.pw.AssignStaff(org.ID, p.ID, staff.ID)
	if err != nil {
		t.Fatalf("assign-staff: %v", err)
	}
	if got.StaffID == nil || *got.StaffID != staff.ID {
		t.Errorf("staff not assigned: %+v", got.StaffID)
	}
	if got.State != performances.StateSubmitted {
		t.Errorf("assignment must not change state, got %s", got.State)
	}

	// target must hold the staff role
	_, err = e.pw.AssignStaff(org.ID, p.ID, artist.ID)
	wantKind(t, err, workflow.KindValidationFailed)

	// unknown target
	_, err = e.pw.AssignStaff(org.ID, p.ID, 999)
	wantKind(t, err, workflow.KindNotFound)
}

func TestAddBandMember(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	member := e.user(t, "mia", users.RoleUser)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateCreated, artist)

	got, err := e.pw.AddBandMember(artist.ID, p.ID, "mia")
	if err != nil {
		t.Fatalf("add-band-member: %v", err)
	}
	if !got.IsBandMember(member.ID) {
		t.Error("member not on roster")
	}

	// role upgraded from the base role
	u, err := e.store.UserByID(member.ID)
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != users.RoleArtist {
		t.Errorf("member role = %s, want %s", u.Role, users.RoleArtist)
	}

	// duplicates rejected
	_, err = e.pw.AddBandMember(artist.ID, p.ID, "mia")
	wantKind(t, err, workflow.KindConflict)

	// unknown username
	_, err = e.pw.AddBandMember(artist.ID, p.ID, "nobody")
	wantKind(t, err, workflow.KindNotFound)

	// only the creator manages the roster
	_, err = e.pw.AddBandMember(org.ID, p.ID, "olga")
	wantKind(t, err, workflow.KindForbidden)
}

func TestInactiveActorDenied(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	ghost := e.inactiveUser(t, "ghost", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)

	_, err := e.pw.Create(ghost.ID, f.ID, workflow.CreatePerformanceInput{Name: "Alpha"})
	wantKind(t, err, workflow.KindForbidden)
}

func TestTransitionUnknownPerformance(t *testing.T) {
	e := newEnv()
	artist := e.user(t, "amy", users.RoleArtist)

	_, err := e.pw.Submit(artist.ID, 42)
	wantKind(t, err, workflow.KindNotFound)
}

func TestTransitionUnknownActor(t *testing.T) {
	e := newEnv()
	org := e.user(t, "olga", users.RoleOrganizer)
	artist := e.user(t, "amy", users.RoleArtist)
	f := e.festival(t, "Summer Jam", festivals.StateSubmission, org)
	p := e.performance(t, f, "Alpha", performances.StateCreated, artist)

	_, err := e.pw.Submit(999, p.ID)
	wantKind(t, err, workflow.KindNotFound)
}
