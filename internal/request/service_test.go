package request

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/sreeram023/event-approval-backend/internal/auditlog"
	"github.com/sreeram023/event-approval-backend/internal/auth"
	"github.com/sreeram023/event-approval-backend/internal/certificate"
	"github.com/sreeram023/event-approval-backend/internal/venue"
)

// =============================
// Fakes
// =============================

type fakeRequestRepo struct {
	byID      map[string]*Request
	nextPK    uint
	staleOnce bool // force one lost CAS round
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{byID: map[string]*Request{}}
}

// cloneRequest detaches the copy's chain from the stored backing array so
// callers mutating a loaded request never touch the store without a save.
func cloneRequest(req *Request) *Request {
	cp := *req
	cp.ApprovalChain = append(req.ApprovalChain[:0:0], req.ApprovalChain...)
	return &cp
}

func (r *fakeRequestRepo) Create(_ context.Context, req *Request) error {
	r.nextPK++
	req.ID = r.nextPK
	req.CreatedAt = time.Now()
	r.byID[req.RequestID] = cloneRequest(req)
	return nil
}

func (r *fakeRequestRepo) FindByRequestID(_ context.Context, requestID string) (*Request, error) {
	req, ok := r.byID[requestID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneRequest(req), nil
}

func (r *fakeRequestRepo) FindMany(_ context.Context, q Query) ([]Request, error) {
	var out []Request
	for _, req := range r.byID {
		if len(q.Statuses) > 0 && !contains(q.Statuses, req.Status) {
			continue
		}
		if q.Committee != "" && req.Committee != q.Committee {
			continue
		}
		if q.UserID != nil && req.UserID != *q.UserID {
			continue
		}
		if q.Venue != "" && req.Venue != q.Venue {
			continue
		}
		if q.From != nil && req.EventDate.Before(*q.From) {
			continue
		}
		if q.To != nil && !req.EventDate.Before(*q.To) {
			continue
		}
		if q.ExcludeID != "" && req.RequestID == q.ExcludeID {
			continue
		}
		out = append(out, *cloneRequest(req))
	}
	return out, nil
}

func (r *fakeRequestRepo) CountForYear(_ context.Context, year int) (int64, error) {
	var count int64
	for _, req := range r.byID {
		if req.CreatedAt.Year() == year {
			count++
		}
	}
	return count, nil
}

func (r *fakeRequestRepo) SaveVersioned(_ context.Context, req *Request) (bool, error) {
	if r.staleOnce {
		r.staleOnce = false
		return false, nil
	}
	stored, ok := r.byID[req.RequestID]
	if !ok || stored.Version != req.Version {
		return false, nil
	}
	req.Version++
	r.byID[req.RequestID] = cloneRequest(req)
	return true, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

type fakeVenueSvc struct {
	slots map[string][]venue.BookedSlot // venue name -> slots
}

func newFakeVenueSvc() *fakeVenueSvc {
	return &fakeVenueSvc{slots: map[string][]venue.BookedSlot{}}
}

func (v *fakeVenueSvc) Book(_ context.Context, venueName string, date time.Time, start, end, requestID string) error {
	for _, s := range v.slots[venueName] {
		if s.RequestID == requestID {
			return nil
		}
	}
	v.slots[venueName] = append(v.slots[venueName], venue.BookedSlot{
		RequestID: requestID, EventDate: date, StartTime: start, EndTime: end,
	})
	return nil
}

func (v *fakeVenueSvc) HasOverlap(_ context.Context, venueName string, date time.Time, start, end, excludeRequestID string) (bool, error) {
	for _, s := range v.slots[venueName] {
		if excludeRequestID != "" && s.RequestID == excludeRequestID {
			continue
		}
		if s.EventDate.Format("2006-01-02") != date.Format("2006-01-02") {
			continue
		}
		overlap, err := venue.TimeOverlap(start, end, s.StartTime, s.EndTime)
		if err != nil {
			return false, err
		}
		if overlap {
			return true, nil
		}
	}
	return false, nil
}

type fakeCalendar struct {
	recorded []string
}

func (f *fakeCalendar) RecordApproved(_ context.Context, requestID, _, _, _ string, _ time.Time, _, _ string) error {
	f.recorded = append(f.recorded, requestID)
	return nil
}

type fakeNotifier struct {
	sent []string // "recipient|subject"
}

func (f *fakeNotifier) Notify(_ context.Context, recipient, subject, _ string) error {
	f.sent = append(f.sent, recipient+"|"+subject)
	return nil
}

type fakeCert struct {
	generated []certificate.Data
	fail      bool
}

func (f *fakeCert) Generate(data certificate.Data) (string, error) {
	if f.fail {
		return "", fmt.Errorf("renderer unavailable")
	}
	f.generated = append(f.generated, data)
	return "./public/approvals/" + data.RequestID + ".pdf", nil
}

type noopAudit struct{}

func (noopAudit) LogAction(context.Context, *uint, *string, string, map[string]interface{}, string, string) error {
	return nil
}
func (noopAudit) GetAuditLogs(context.Context, auditlog.AuditLogFilter) (*auditlog.PaginatedAuditLogs, error) {
	return &auditlog.PaginatedAuditLogs{}, nil
}
func (noopAudit) GetAuditLogByID(context.Context, uint) (*auditlog.AuditLogResponse, error) {
	return nil, gorm.ErrRecordNotFound
}

type fixture struct {
	svc      Service
	repo     *fakeRequestRepo
	dir      *fakeDirectory
	venues   *fakeVenueSvc
	calendar *fakeCalendar
	notifier *fakeNotifier
	certs    *fakeCert
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newFakeRequestRepo(),
		dir:      fullDirectory(),
		venues:   newFakeVenueSvc(),
		calendar: &fakeCalendar{},
		notifier: &fakeNotifier{},
		certs:    &fakeCert{},
	}
	f.svc = NewService(f.repo, f.dir, f.venues, f.calendar, f.notifier, f.certs, noopAudit{})
	return f
}

func validInput() CreateInput {
	return CreateInput{
		Committee:          "GDG Student Club",
		EventName:          "DevFest On Campus",
		Description:        "Full day developer festival.",
		EventDate:          "2026-03-14",
		StartTime:          "09:00",
		EndTime:            "17:00",
		Venue:              "Main Auditorium",
		ExpectedAttendance: 250,
	}
}

func (f *fixture) requester() auth.User {
	return f.dir.users[10]
}

func (f *fixture) approver(id uint) auth.User {
	return f.dir.users[id]
}

// =============================
// Create
// =============================

func TestCreateRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, next, err := f.svc.Create(ctx, f.requester(), validInput(), "10.0.0.1")
	assert.NoError(t, err)
	assert.Regexp(t, `^REQ-\d{4}-\d{6}$`, req.RequestID)
	assert.Equal(t, StatusPending, req.Status)
	assert.Len(t, req.ApprovalChain, 5)

	// First pending step is the faculty coordinator at index 1.
	assert.NotNil(t, req.CurrentStepIndex)
	assert.Equal(t, 1, *req.CurrentStepIndex)
	assert.NotNil(t, req.CurrentApproverID)
	assert.Equal(t, uint(2), *req.CurrentApproverID)

	assert.NotNil(t, next)
	assert.Equal(t, auth.RoleFacultyCoordinator, next.Role)

	// The resolved current approver was notified.
	assert.Contains(t, f.notifier.sent[0], "faculty@club.edu")
}

func TestCreateRequestValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	in := validInput()
	in.EventName = ""
	_, _, err := f.svc.Create(ctx, f.requester(), in, "")
	assert.ErrorIs(t, err, ErrMissingFields)

	in = validInput()
	in.EventDate = "14-03-2026"
	_, _, err = f.svc.Create(ctx, f.requester(), in, "")
	assert.ErrorIs(t, err, ErrInvalidDate)

	in = validInput()
	in.StartTime = "17:00"
	in.EndTime = "09:00"
	_, _, err = f.svc.Create(ctx, f.requester(), in, "")
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)

	in = validInput()
	in.EndTime = in.StartTime
	_, _, err = f.svc.Create(ctx, f.requester(), in, "")
	assert.ErrorIs(t, err, ErrInvalidTimeWindow)
}

func TestCreateFailsAtomicallyOnIncompleteChain(t *testing.T) {
	f := newFixture()
	delete(f.dir.users, 3) // no TPO anywhere

	_, _, err := f.svc.Create(context.Background(), f.requester(), validInput(), "")
	var incomplete *IncompleteChainError
	assert.ErrorAs(t, err, &incomplete)
	assert.Equal(t, []string{auth.RoleTPO}, incomplete.Missing)

	// Nothing was persisted.
	assert.Empty(t, f.repo.byID)
}

func TestCreateFailsOnDirectoryError(t *testing.T) {
	f := newFixture()
	storeErr := errors.New("connection refused")
	svc := NewService(f.repo, failingDirectory{err: storeErr}, f.venues, f.calendar, f.notifier, f.certs, noopAudit{})

	_, _, err := svc.Create(context.Background(), f.requester(), validInput(), "")
	assert.ErrorIs(t, err, storeErr)

	var incomplete *IncompleteChainError
	assert.False(t, errors.As(err, &incomplete))
	assert.Empty(t, f.repo.byID)
}

// =============================
// Approve / Reject
// =============================

func walkToApproval(t *testing.T, f *fixture) *Request {
	t.Helper()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	for _, approverID := range []uint{2, 3, 4} {
		updated, next, certPath, err := f.svc.Approve(ctx, f.approver(approverID), req.RequestID, "ok", "")
		assert.NoError(t, err)
		assert.Equal(t, StatusInReview, updated.Status)
		assert.NotNil(t, next)
		assert.Empty(t, certPath)
	}

	updated, next, certPath, err := f.svc.Approve(ctx, f.approver(5), req.RequestID, "final", "")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.Status)
	assert.Nil(t, next)
	assert.NotEmpty(t, certPath)
	return updated
}

func TestFullApprovalWalk(t *testing.T) {
	f := newFixture()

	req := walkToApproval(t, f)

	assert.Nil(t, req.CurrentApproverID)
	assert.Nil(t, req.CurrentStepIndex)
	assert.NotNil(t, req.ApprovedAt)
	for _, step := range req.ApprovalChain {
		assert.Equal(t, StepApproved, step.Status)
		assert.NotNil(t, step.Timestamp)
	}

	// Venue slot appended, calendar entry recorded, certificate rendered.
	assert.Len(t, f.venues.slots["Main Auditorium"], 1)
	assert.Equal(t, req.RequestID, f.venues.slots["Main Auditorium"][0].RequestID)
	assert.Equal(t, []string{req.RequestID}, f.calendar.recorded)
	assert.Len(t, f.certs.generated, 1)

	// Fan-out went to the requester and every institution approver.
	var recipients []string
	for _, s := range f.notifier.sent {
		recipients = append(recipients, s)
	}
	joined := fmt.Sprint(recipients)
	assert.Contains(t, joined, "ravi@student.edu")
	assert.Contains(t, joined, "tpo@institution.edu")
	assert.Contains(t, joined, "vp@institution.edu")
	assert.Contains(t, joined, "principal@institution.edu")
}

func TestApprovalAdvancesInChainOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	updated, next, _, err := f.svc.Approve(ctx, f.approver(2), req.RequestID, "", "")
	assert.NoError(t, err)
	assert.Equal(t, 2, *updated.CurrentStepIndex)
	assert.Equal(t, auth.RoleTPO, next.Role)
	assert.Equal(t, StepApproved, updated.ApprovalChain[1].Status)
	assert.Equal(t, StepPending, updated.ApprovalChain[2].Status)
}

func TestApproveRejectsWrongApprover(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	// The principal is on the chain but not the current slot holder.
	_, _, _, err = f.svc.Approve(ctx, f.approver(5), req.RequestID, "", "")
	assert.ErrorIs(t, err, ErrNotCurrentApprover)

	// The requester is not an approver at all.
	_, _, _, err = f.svc.Approve(ctx, f.requester(), req.RequestID, "", "")
	assert.ErrorIs(t, err, ErrNotCurrentApprover)
}

func TestApproveUnknownRequest(t *testing.T) {
	f := newFixture()
	_, _, _, err := f.svc.Approve(context.Background(), f.approver(2), "REQ-2026-999999", "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRejectAtTPOStage(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	_, _, _, err = f.svc.Approve(ctx, f.approver(2), req.RequestID, "", "")
	assert.NoError(t, err)

	rejected, err := f.svc.Reject(ctx, f.approver(3), req.RequestID, "Budget exceeded", "over limit", "")
	assert.NoError(t, err)

	assert.Equal(t, StatusRejected, rejected.Status)
	assert.Equal(t, "Budget exceeded", *rejected.RejectionReason)
	assert.Equal(t, uint(3), *rejected.RejectedBy)
	assert.NotNil(t, rejected.RejectedAt)
	assert.Nil(t, rejected.CurrentApproverID)
	assert.Nil(t, rejected.CurrentStepIndex)

	// Earlier steps stay approved, the rejected step is marked, later steps
	// stay frozen pending.
	assert.Equal(t, StepApproved, rejected.ApprovalChain[0].Status)
	assert.Equal(t, StepApproved, rejected.ApprovalChain[1].Status)
	assert.Equal(t, StepRejected, rejected.ApprovalChain[2].Status)
	assert.Equal(t, StepPending, rejected.ApprovalChain[3].Status)
	assert.Equal(t, StepPending, rejected.ApprovalChain[4].Status)
}

func TestRejectRequiresReason(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	_, err = f.svc.Reject(ctx, f.approver(2), req.RequestID, "   ", "", "")
	assert.ErrorIs(t, err, ErrMissingReason)
}

func TestTerminalRequestsAreFrozen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := walkToApproval(t, f)

	for _, id := range []uint{2, 3, 4, 5} {
		_, _, _, err := f.svc.Approve(ctx, f.approver(id), req.RequestID, "", "")
		assert.ErrorIs(t, err, ErrNotCurrentApprover)
		_, err = f.svc.Reject(ctx, f.approver(id), req.RequestID, "late", "", "")
		assert.ErrorIs(t, err, ErrNotCurrentApprover)
	}

	stored, err := f.repo.FindByRequestID(ctx, req.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, stored.Status)
}

func TestLoadedRequestDoesNotAliasStore(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	// Mutating a loaded copy without saving must leave the store untouched.
	loaded, err := f.repo.FindByRequestID(ctx, req.RequestID)
	assert.NoError(t, err)
	loaded.ApprovalChain[1].Status = StepApproved

	stored, err := f.repo.FindByRequestID(ctx, req.RequestID)
	assert.NoError(t, err)
	assert.Equal(t, StepPending, stored.ApprovalChain[1].Status)
}

func TestApproveStaleVersion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	f.repo.staleOnce = true
	_, _, _, err = f.svc.Approve(ctx, f.approver(2), req.RequestID, "", "")
	assert.ErrorIs(t, err, ErrStaleRequest)

	// The store kept the original state.
	stored, _ := f.repo.FindByRequestID(ctx, req.RequestID)
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, StepPending, stored.ApprovalChain[1].Status)
}

// =============================
// Conflict cascade
// =============================

func TestConflictCascade(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	winner, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	loserInput := validInput()
	loserInput.EventName = "Rival Workshop"
	loserInput.StartTime = "16:00"
	loserInput.EndTime = "19:00"
	loser, _, err := f.svc.Create(ctx, f.requester(), loserInput, "")
	assert.NoError(t, err)

	// A same-venue request on the same day without overlap survives.
	safeInput := validInput()
	safeInput.EventName = "Evening Meetup"
	safeInput.StartTime = "17:00"
	safeInput.EndTime = "19:00"
	safe, _, err := f.svc.Create(ctx, f.requester(), safeInput, "")
	assert.NoError(t, err)

	for _, id := range []uint{2, 3, 4, 5} {
		_, _, _, err := f.svc.Approve(ctx, f.approver(id), winner.RequestID, "", "")
		assert.NoError(t, err)
	}

	storedWinner, _ := f.repo.FindByRequestID(ctx, winner.RequestID)
	assert.Equal(t, StatusApproved, storedWinner.Status)

	storedLoser, _ := f.repo.FindByRequestID(ctx, loser.RequestID)
	assert.Equal(t, StatusRejected, storedLoser.Status)
	assert.Equal(t, ConflictRejectionReason, *storedLoser.RejectionReason)
	assert.NotNil(t, storedLoser.RejectedAt)
	assert.Nil(t, storedLoser.CurrentApproverID)

	storedSafe, _ := f.repo.FindByRequestID(ctx, safe.RequestID)
	assert.Equal(t, StatusPending, storedSafe.Status)

	// A force-rejected request is terminally frozen.
	_, _, _, err = f.svc.Approve(ctx, f.approver(2), loser.RequestID, "", "")
	assert.ErrorIs(t, err, ErrNotCurrentApprover)
}

func TestConflictCascadeRerunIsIdempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	winner, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	for _, id := range []uint{2, 3, 4, 5} {
		_, _, _, err := f.svc.Approve(ctx, f.approver(id), winner.RequestID, "", "")
		assert.NoError(t, err)
	}

	notifications := len(f.notifier.sent)
	assert.NoError(t, f.svc.RerunConflictCascade(ctx, winner.RequestID, ""))
	assert.NoError(t, f.svc.RerunConflictCascade(ctx, winner.RequestID, ""))

	// No duplicate slot, no extra rejection notifications.
	assert.Len(t, f.venues.slots["Main Auditorium"], 1)
	assert.Len(t, f.notifier.sent, notifications)
}

func TestCertificateFailureKeepsRequestApproved(t *testing.T) {
	f := newFixture()
	f.certs.fail = true
	ctx := context.Background()

	req, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	for _, id := range []uint{2, 3, 4} {
		_, _, _, err := f.svc.Approve(ctx, f.approver(id), req.RequestID, "", "")
		assert.NoError(t, err)
	}

	updated, _, certPath, err := f.svc.Approve(ctx, f.approver(5), req.RequestID, "", "")
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, updated.Status)
	assert.Empty(t, certPath)

	// The venue slot still landed.
	assert.Len(t, f.venues.slots["Main Auditorium"], 1)
}

// =============================
// Read side
// =============================

func TestListEnrichment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	approved := walkToApproval(t, f)

	pendingInput := validInput()
	pendingInput.EventName = "Tech Talk"
	pendingInput.Venue = "Seminar Hall A"
	pending, _, err := f.svc.Create(ctx, f.requester(), pendingInput, "")
	assert.NoError(t, err)

	results, err := f.svc.List(ctx, f.approver(3), ListFilter{})
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	byID := map[string]EnrichedRequest{}
	for _, r := range results {
		byID[r.RequestID] = r
	}

	got := byID[approved.RequestID]
	assert.True(t, got.DownloadAvailable)
	assert.Nil(t, got.NextApprover)
	// Its own booked slot makes the flag true.
	assert.True(t, got.VenueBooked)

	got = byID[pending.RequestID]
	assert.False(t, got.DownloadAvailable)
	assert.NotNil(t, got.NextApprover)
	assert.Equal(t, auth.RoleFacultyCoordinator, got.NextApprover.Role)
	assert.False(t, got.VenueBooked)
}

func TestListRoleScoping(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// One request from the GDG committee, one from another student's account
	// in a different committee with its own chain.
	_, _, err := f.svc.Create(ctx, f.requester(), validInput(), "")
	assert.NoError(t, err)

	f.dir.users[20] = auth.User{ID: 20, FullName: "Synapse Lead", Email: "slead@club.edu", Role: auth.RoleLead, Committee: "Synapse Club"}
	f.dir.users[21] = auth.User{ID: 21, FullName: "Synapse Faculty", Email: "sfac@club.edu", Role: auth.RoleFacultyCoordinator, Committee: "Synapse Club"}
	f.dir.users[22] = auth.User{ID: 22, FullName: "Maya Student", Email: "maya@student.edu", Role: auth.RoleStudent, Committee: "Synapse Club"}

	otherInput := validInput()
	otherInput.Committee = "Synapse Club"
	otherInput.Venue = "Seminar Hall B"
	_, _, err = f.svc.Create(ctx, f.dir.users[22], otherInput, "")
	assert.NoError(t, err)

	// Committee role sees only its committee.
	results, err := f.svc.List(ctx, f.approver(2), ListFilter{})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, "GDG Student Club", results[0].Committee)

	// Institution role sees everything.
	results, err = f.svc.List(ctx, f.approver(5), ListFilter{})
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	// A student sees only their own.
	results, err = f.svc.List(ctx, f.dir.users[22], ListFilter{})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, uint(22), results[0].UserID)
}

func TestListStatusGroupings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	walkToApproval(t, f)

	pendingInput := validInput()
	pendingInput.Venue = "Seminar Hall A"
	_, _, err := f.svc.Create(ctx, f.requester(), pendingInput, "")
	assert.NoError(t, err)

	results, err := f.svc.List(ctx, f.approver(3), ListFilter{Status: "pending"})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, StatusPending, results[0].Status)

	results, err = f.svc.List(ctx, f.approver(3), ListFilter{Status: "complete"})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, StatusApproved, results[0].Status)
}

func TestCalendarQueries(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	approved := walkToApproval(t, f)

	dates, err := f.svc.CalendarOverview(ctx, "2026-03")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2026-03-14"}, dates)

	dates, err = f.svc.CalendarOverview(ctx, "2026-04")
	assert.NoError(t, err)
	assert.Empty(t, dates)

	_, err = f.svc.CalendarOverview(ctx, "March")
	assert.ErrorIs(t, err, ErrInvalidDate)

	events, err := f.svc.EventsOnDay(ctx, "2026-03-14")
	assert.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, approved.RequestID, events[0].RequestID)
}
