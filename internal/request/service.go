package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sreeram023/event-approval-backend/internal/auditlog"
	"github.com/sreeram023/event-approval-backend/internal/auth"
	"github.com/sreeram023/event-approval-backend/internal/certificate"
	"github.com/sreeram023/event-approval-backend/internal/venue"
	"github.com/sreeram023/event-approval-backend/utils"
)

var (
	ErrNotFound           = errors.New("request not found")
	ErrNotCurrentApprover = errors.New("you are not the current approver")
	ErrMissingReason      = errors.New("rejection reason is required")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidDate        = errors.New("invalid event date")
	ErrInvalidTimeWindow  = errors.New("end time must be after start time")
	ErrStaleRequest       = errors.New("request was modified concurrently, retry")
)

// ConflictRejectionReason is stamped on requests losing a venue race.
const ConflictRejectionReason = "Venue already booked"

// VenueBooker is the slice of the venue service the workflow needs.
type VenueBooker interface {
	Book(ctx context.Context, venueName string, date time.Time, start, end, requestID string) error
	HasOverlap(ctx context.Context, venueName string, date time.Time, start, end, excludeRequestID string) (bool, error)
}

// CalendarRecorder inserts the derived calendar entry on full approval.
type CalendarRecorder interface {
	RecordApproved(ctx context.Context, requestID, eventName, committee, venueName string, eventDate time.Time, startTime, endTime string) error
}

// Notifier delivers best-effort messages. Failures are logged, never fatal.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// CertGenerator renders the approval certificate.
type CertGenerator interface {
	Generate(data certificate.Data) (string, error)
}

type Service interface {
	Create(ctx context.Context, user auth.User, in CreateInput, ip string) (*Request, *auth.ApproverSummary, error)
	Approve(ctx context.Context, user auth.User, requestID, comment, ip string) (*Request, *auth.ApproverSummary, string, error)
	Reject(ctx context.Context, user auth.User, requestID, reason, comment, ip string) (*Request, error)
	List(ctx context.Context, user auth.User, filter ListFilter) ([]EnrichedRequest, error)
	Get(ctx context.Context, requestID string) (*Request, error)

	// CalendarOverview returns the distinct dates in a YYYY-MM month holding
	// at least one approved event.
	CalendarOverview(ctx context.Context, month string) ([]string, error)
	EventsOnDay(ctx context.Context, date string) ([]Request, error)

	// RerunConflictCascade re-applies the venue booking and conflict sweep
	// for an already approved request. Safe to call repeatedly; used to
	// recover from a cascade interrupted partway.
	RerunConflictCascade(ctx context.Context, requestID, ip string) error
}

type service struct {
	repo      Repository
	directory Directory
	venues    VenueBooker
	calendar  CalendarRecorder
	notifier  Notifier
	certs     CertGenerator
	auditSvc  auditlog.Service
}

func NewService(repo Repository, directory Directory, venues VenueBooker, cal CalendarRecorder, notifier Notifier, certs CertGenerator, auditSvc auditlog.Service) Service {
	return &service{
		repo:      repo,
		directory: directory,
		venues:    venues,
		calendar:  cal,
		notifier:  notifier,
		certs:     certs,
		auditSvc:  auditSvc,
	}
}

// =============================
// Create
// =============================

func (s *service) Create(ctx context.Context, user auth.User, in CreateInput, ip string) (*Request, *auth.ApproverSummary, error) {
	if in.Committee == "" || in.EventName == "" || in.EventDate == "" || in.StartTime == "" || in.EndTime == "" || in.Venue == "" {
		return nil, nil, ErrMissingFields
	}

	eventDate, err := time.Parse("2006-01-02", in.EventDate)
	if err != nil {
		return nil, nil, ErrInvalidDate
	}

	startMin, err := venue.ToMinutes(in.StartTime)
	if err != nil {
		return nil, nil, ErrInvalidTimeWindow
	}
	endMin, err := venue.ToMinutes(in.EndTime)
	if err != nil {
		return nil, nil, ErrInvalidTimeWindow
	}
	if endMin <= startMin {
		return nil, nil, ErrInvalidTimeWindow
	}

	now := time.Now()
	chain, err := BuildChain(s.directory, in.Committee, now)
	if err != nil {
		return nil, nil, err
	}

	req := &Request{
		RequestID:           s.nextRequestID(ctx, now.Year()),
		UserID:              user.ID,
		Committee:           in.Committee,
		EventName:           in.EventName,
		Description:         in.Description,
		EventDate:           eventDate,
		StartTime:           in.StartTime,
		EndTime:             in.EndTime,
		Venue:               in.Venue,
		ExpectedAttendance:  in.ExpectedAttendance,
		SpecialRequirements: in.SpecialRequirements,
		ApprovalChain:       chain,
	}

	if idx := req.FirstPendingIndex(); idx >= 0 {
		req.CurrentStepIndex = &idx
		approverID := chain[idx].ApproverID
		req.CurrentApproverID = &approverID
		req.Status = StatusPending
	} else {
		// A fully pre-approved chain is not buildable today, handled anyway.
		req.Status = StatusInReview
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, nil, err
	}

	s.logAudit(ctx, &user.ID, req.RequestID, auditlog.ActionRequestCreated, map[string]interface{}{
		"committee":  req.Committee,
		"event_name": req.EventName,
		"venue":      req.Venue,
	}, ip, "success")

	next := s.resolveNextApprover(req)
	if next != nil && next.Email != "" {
		s.notify(ctx, next.Email,
			fmt.Sprintf("Request %s awaiting your approval", req.RequestID),
			fmt.Sprintf("Please review request %s (%s).", req.RequestID, req.EventName))
	}

	return req, next, nil
}

// nextRequestID allocates REQ-<year>-<seq> from the per-year counter, falling
// back to a cardinality estimate when Redis is unavailable.
func (s *service) nextRequestID(ctx context.Context, year int) string {
	seq, err := utils.NextSequence(ctx, fmt.Sprintf("seq:request_id:%d", year))
	if err != nil {
		count, cntErr := s.repo.CountForYear(ctx, year)
		if cntErr != nil {
			count = 0
		}
		seq = count + 1
		fmt.Printf("⚠️ request id counter unavailable, falling back to count+1: %v\n", err)
	}
	return fmt.Sprintf("REQ-%d-%06d", year, seq)
}

// =============================
// Approve
// =============================

func (s *service) Approve(ctx context.Context, user auth.User, requestID, comment, ip string) (*Request, *auth.ApproverSummary, string, error) {
	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, nil, "", err
	}

	if req.CurrentApproverID == nil || *req.CurrentApproverID != user.ID || req.CurrentStepIndex == nil {
		return nil, nil, "", ErrNotCurrentApprover
	}

	now := time.Now()
	idx := *req.CurrentStepIndex
	req.ApprovalChain[idx].Status = StepApproved
	req.ApprovalChain[idx].Comment = comment
	req.ApprovalChain[idx].Timestamp = &now

	nextIdx := req.FirstPendingIndex()
	if nextIdx >= 0 {
		approverID := req.ApprovalChain[nextIdx].ApproverID
		req.CurrentApproverID = &approverID
		req.CurrentStepIndex = &nextIdx
		req.Status = StatusInReview

		if err := s.save(ctx, req); err != nil {
			return nil, nil, "", err
		}

		s.logAudit(ctx, &user.ID, req.RequestID, auditlog.ActionStepApproved, map[string]interface{}{
			"step_index": idx,
			"role":       req.ApprovalChain[idx].Role,
		}, ip, "success")

		next := s.resolveNextApprover(req)
		if next != nil && next.Email != "" {
			s.notify(ctx, next.Email,
				fmt.Sprintf("Request %s awaiting your approval", req.RequestID),
				fmt.Sprintf("Please review request %s (%s).", req.RequestID, req.EventName))
		}
		if requester, err := s.directory.FindByID(req.UserID); err == nil && requester.Email != "" {
			s.notify(ctx, requester.Email,
				fmt.Sprintf("Request %s moved to %s", req.RequestID, req.ApprovalChain[nextIdx].Role),
				"Your request moved forward in the approval chain.")
		}

		return req, next, "", nil
	}

	// Chain exhausted: terminal approval.
	req.CurrentApproverID = nil
	req.CurrentStepIndex = nil
	req.Status = StatusApproved
	req.ApprovedAt = &now

	if err := s.save(ctx, req); err != nil {
		return nil, nil, "", err
	}

	s.logAudit(ctx, &user.ID, req.RequestID, auditlog.ActionRequestApproved, map[string]interface{}{
		"event_name": req.EventName,
		"venue":      req.Venue,
	}, ip, "success")

	certPath := s.runPostApproval(ctx, req, ip)
	return req, nil, certPath, nil
}

// runPostApproval executes the fixed side-effect order after terminal
// approval: venue booking + conflict cascade, calendar entry, certificate,
// notification fan-out. Each step fails independently without rolling back
// the approved status.
func (s *service) runPostApproval(ctx context.Context, req *Request, ip string) string {
	if err := s.venues.Book(ctx, req.Venue, req.EventDate, req.StartTime, req.EndTime, req.RequestID); err != nil {
		fmt.Printf("❌ Venue booking failed for %s: %v\n", req.RequestID, err)
	} else {
		s.logAudit(ctx, nil, req.RequestID, auditlog.ActionVenueBooked, map[string]interface{}{
			"venue": req.Venue,
		}, ip, "success")
	}

	s.rejectConflicts(ctx, req, ip)

	if err := s.calendar.RecordApproved(ctx, req.RequestID, req.EventName, req.Committee, req.Venue, req.EventDate, req.StartTime, req.EndTime); err != nil {
		fmt.Printf("❌ Calendar entry failed for %s: %v\n", req.RequestID, err)
	}

	certPath := ""
	path, err := s.certs.Generate(s.certificateData(req))
	if err != nil {
		fmt.Printf("❌ Certificate generation failed for %s: %v\n", req.RequestID, err)
	} else {
		certPath = path
		s.logAudit(ctx, nil, req.RequestID, auditlog.ActionCertificateGenerated, map[string]interface{}{
			"path": path,
		}, ip, "success")
	}

	if requester, err := s.directory.FindByID(req.UserID); err == nil && requester.Email != "" {
		body := fmt.Sprintf("Your request %s was fully approved.", req.RequestID)
		if certPath != "" {
			body += " Download: " + certPath
		}
		s.notify(ctx, requester.Email, fmt.Sprintf("Request %s approved", req.RequestID), body)
	}

	approvers, err := s.directory.FindUsersByRoles(auth.InstitutionRoles...)
	if err != nil {
		fmt.Printf("❌ Failed to resolve institution approvers for fan-out: %v\n", err)
	} else {
		for _, ga := range approvers {
			if ga.Email == "" {
				continue
			}
			s.notify(ctx, ga.Email,
				fmt.Sprintf("Request %s approved", req.RequestID),
				fmt.Sprintf("Request %s (%s) was fully approved.", req.RequestID, req.EventName))
		}
	}

	return certPath
}

// certificateData resolves approver names and signature paths for rendering.
func (s *service) certificateData(req *Request) certificate.Data {
	steps := make([]certificate.Step, 0, len(req.ApprovalChain))
	for _, step := range req.ApprovalChain {
		cs := certificate.Step{
			Role:         step.Role,
			ApproverName: "Unknown",
			Status:       step.Status,
			Comment:      step.Comment,
			Timestamp:    step.Timestamp,
		}
		if approver, err := s.directory.FindByID(step.ApproverID); err == nil {
			cs.ApproverName = approver.FullName
			cs.SignaturePath = approver.SignPath
		}
		steps = append(steps, cs)
	}

	return certificate.Data{
		RequestID:          req.RequestID,
		Committee:          req.Committee,
		EventName:          req.EventName,
		Description:        req.Description,
		EventDate:          req.EventDate,
		StartTime:          req.StartTime,
		EndTime:            req.EndTime,
		Venue:              req.Venue,
		ExpectedAttendance: req.ExpectedAttendance,
		Steps:              steps,
	}
}

// =============================
// Reject
// =============================

func (s *service) Reject(ctx context.Context, user auth.User, requestID, reason, comment, ip string) (*Request, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrMissingReason
	}

	req, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.CurrentApproverID == nil || *req.CurrentApproverID != user.ID || req.CurrentStepIndex == nil {
		return nil, ErrNotCurrentApprover
	}

	now := time.Now()
	idx := *req.CurrentStepIndex
	req.ApprovalChain[idx].Status = StepRejected
	req.ApprovalChain[idx].Comment = comment
	req.ApprovalChain[idx].Timestamp = &now

	req.Status = StatusRejected
	req.RejectionReason = &reason
	rejectedBy := user.ID
	req.RejectedBy = &rejectedBy
	req.RejectedAt = &now
	req.CurrentApproverID = nil
	req.CurrentStepIndex = nil

	if err := s.save(ctx, req); err != nil {
		return nil, err
	}

	s.logAudit(ctx, &user.ID, req.RequestID, auditlog.ActionRequestRejected, map[string]interface{}{
		"reason": reason,
		"role":   req.ApprovalChain[idx].Role,
	}, ip, "success")

	if requester, err := s.directory.FindByID(req.UserID); err == nil && requester.Email != "" {
		s.notify(ctx, requester.Email,
			fmt.Sprintf("Request %s rejected", req.RequestID),
			fmt.Sprintf("Reason: %s", reason))
	}

	return req, nil
}

// =============================
// Venue conflict cascade
// =============================

// rejectConflicts force-rejects every unresolved request overlapping the
// winner's slot. Each candidate is its own atomic update so a partial failure
// never blocks the rest, and re-running the sweep is a no-op for requests
// already terminal.
func (s *service) rejectConflicts(ctx context.Context, winner *Request, ip string) {
	dayStart := time.Date(winner.EventDate.Year(), winner.EventDate.Month(), winner.EventDate.Day(), 0, 0, 0, 0, winner.EventDate.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	candidates, err := s.repo.FindMany(ctx, Query{
		Statuses:  []string{StatusPending, StatusInReview},
		Venue:     winner.Venue,
		From:      &dayStart,
		To:        &dayEnd,
		ExcludeID: winner.RequestID,
	})
	if err != nil {
		fmt.Printf("❌ Conflict candidate query failed for %s: %v\n", winner.RequestID, err)
		return
	}

	for i := range candidates {
		candidate := &candidates[i]
		overlap, err := venue.TimeOverlap(candidate.StartTime, candidate.EndTime, winner.StartTime, winner.EndTime)
		if err != nil {
			fmt.Printf("❌ Overlap check failed for %s: %v\n", candidate.RequestID, err)
			continue
		}
		if !overlap {
			continue
		}
		s.forceReject(ctx, candidate, ip)
	}
}

// forceReject is the administrative override used only by the conflict
// cascade. It bypasses the current-approver check: losing a venue race is
// structural, not an approver's judgment.
func (s *service) forceReject(ctx context.Context, req *Request, ip string) {
	for attempt := 0; attempt < 3; attempt++ {
		if req.IsTerminal() {
			return
		}

		now := time.Now()
		reason := ConflictRejectionReason
		req.Status = StatusRejected
		req.RejectionReason = &reason
		req.RejectedAt = &now
		req.CurrentApproverID = nil
		req.CurrentStepIndex = nil

		ok, err := s.repo.SaveVersioned(ctx, req)
		if err != nil {
			fmt.Printf("❌ Conflict rejection failed for %s: %v\n", req.RequestID, err)
			return
		}
		if ok {
			s.logAudit(ctx, nil, req.RequestID, auditlog.ActionConflictRejected, map[string]interface{}{
				"reason": reason,
			}, ip, "success")

			if requester, err := s.directory.FindByID(req.UserID); err == nil && requester.Email != "" {
				s.notify(ctx, requester.Email,
					fmt.Sprintf("Request %s rejected", req.RequestID),
					fmt.Sprintf("Reason: %s", reason))
			}
			return
		}

		// Lost a race, reload and retry.
		fresh, err := s.repo.FindByRequestID(ctx, req.RequestID)
		if err != nil {
			fmt.Printf("❌ Reload failed for %s during conflict rejection: %v\n", req.RequestID, err)
			return
		}
		*req = *fresh
	}
	fmt.Printf("⚠️ Gave up rejecting conflicting request %s after retries\n", req.RequestID)
}

func (s *service) RerunConflictCascade(ctx context.Context, requestID, ip string) error {
	req, err := s.load(ctx, requestID)
	if err != nil {
		return err
	}
	if req.Status != StatusApproved {
		return fmt.Errorf("request %s is not approved", requestID)
	}

	if err := s.venues.Book(ctx, req.Venue, req.EventDate, req.StartTime, req.EndTime, req.RequestID); err != nil {
		fmt.Printf("❌ Venue re-book failed for %s: %v\n", req.RequestID, err)
	}
	s.rejectConflicts(ctx, req, ip)
	return nil
}

// =============================
// Read side
// =============================

func (s *service) List(ctx context.Context, user auth.User, filter ListFilter) ([]EnrichedRequest, error) {
	q := Query{}

	switch filter.Status {
	case "":
	case "pending":
		q.Statuses = []string{StatusPending, StatusInReview}
	case "complete":
		q.Statuses = []string{StatusApproved, StatusRejected}
	default:
		q.Statuses = []string{filter.Status}
	}

	if filter.Month != "" {
		from, err := time.Parse("2006-01", filter.Month)
		if err != nil {
			return nil, ErrInvalidDate
		}
		to := from.AddDate(0, 1, 0)
		q.From = &from
		q.To = &to
	}

	if filter.UserID != nil {
		q.UserID = filter.UserID
	}

	// Role scoping: committee roles see their committee, institution roles
	// see everything, students see only their own unless a target user was
	// given explicitly.
	switch {
	case auth.IsCommitteeRole(user.Role):
		q.Committee = user.Committee
	case auth.IsInstitutionRole(user.Role):
	case user.Role == auth.RoleStudent:
		if filter.UserID == nil {
			uid := user.ID
			q.UserID = &uid
		}
	default:
		uid := user.ID
		q.UserID = &uid
	}

	requests, err := s.repo.FindMany(ctx, q)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedRequest, 0, len(requests))
	for i := range requests {
		enriched = append(enriched, s.enrich(ctx, &requests[i]))
	}
	return enriched, nil
}

func (s *service) enrich(ctx context.Context, req *Request) EnrichedRequest {
	e := EnrichedRequest{Request: *req}

	e.NextApprover = s.resolveNextApprover(req)
	e.DownloadAvailable = req.Status == StatusApproved

	// Booked-status scans every slot including the request's own, so an
	// approved request that holds its slot reports true.
	booked, err := s.venues.HasOverlap(ctx, req.Venue, req.EventDate, req.StartTime, req.EndTime, "")
	if err != nil {
		fmt.Printf("⚠️ Booked-status check failed for %s: %v\n", req.RequestID, err)
	}
	e.VenueBooked = booked

	return e
}

func (s *service) resolveNextApprover(req *Request) *auth.ApproverSummary {
	idx := req.FirstPendingIndex()
	if idx < 0 {
		return nil
	}
	approver, err := s.directory.FindByID(req.ApprovalChain[idx].ApproverID)
	if err != nil {
		return nil
	}
	return &auth.ApproverSummary{
		ID:    approver.ID,
		Name:  approver.FullName,
		Role:  approver.Role,
		Email: approver.Email,
	}
}

func (s *service) Get(ctx context.Context, requestID string) (*Request, error) {
	return s.load(ctx, requestID)
}

func (s *service) CalendarOverview(ctx context.Context, month string) ([]string, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to := from.AddDate(0, 1, 0)

	requests, err := s.repo.FindMany(ctx, Query{
		Statuses: []string{StatusApproved},
		From:     &from,
		To:       &to,
	})
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	dates := make([]string, 0, len(requests))
	for _, r := range requests {
		d := r.EventDate.Format("2006-01-02")
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	return dates, nil
}

func (s *service) EventsOnDay(ctx context.Context, date string) ([]Request, error) {
	from, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to := from.AddDate(0, 0, 1)
	return s.repo.FindMany(ctx, Query{From: &from, To: &to})
}

// =============================
// Internals
// =============================

func (s *service) load(ctx context.Context, requestID string) (*Request, error) {
	req, err := s.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (s *service) save(ctx context.Context, req *Request) error {
	ok, err := s.repo.SaveVersioned(ctx, req)
	if err != nil {
		return err
	}
	if !ok {
		return ErrStaleRequest
	}
	return nil
}

func (s *service) notify(ctx context.Context, recipient, subject, body string) {
	if err := s.notifier.Notify(ctx, recipient, subject, body); err != nil {
		fmt.Printf("⚠️ Notification to %s failed: %v\n", recipient, err)
	}
}

func (s *service) logAudit(ctx context.Context, userID *uint, requestID, action string, details map[string]interface{}, ip, status string) {
	if err := s.auditSvc.LogAction(ctx, userID, &requestID, action, details, ip, status); err != nil {
		fmt.Printf("❌ Audit log error: %v\n", err)
	}
}
