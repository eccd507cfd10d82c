package request

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sreeram023/event-approval-backend/internal/auth"
)

// Directory resolves approver accounts. Satisfied by auth.Repository.
type Directory interface {
	FindApproverByRoles(roles []string, committee string) (*auth.User, error)
	FindByID(userID uint) (auth.User, error)
	FindUsersByRoles(roles ...string) ([]auth.User, error)
}

// IncompleteChainError names every approver role that could not be resolved
// for a committee. Raised before the request is persisted.
type IncompleteChainError struct {
	Missing []string
}

func (e *IncompleteChainError) Error() string {
	return fmt.Sprintf("missing approvers: %s", strings.Join(e.Missing, ", "))
}

// findApprover treats a missing record as "no such approver" and lets every
// other error surface as a store failure.
func findApprover(dir Directory, roles []string, committee string) (*auth.User, error) {
	u, err := dir.FindApproverByRoles(roles, committee)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// BuildChain resolves the five-step approval chain for a committee. The
// committee lead submits on behalf of the committee, so the first step is
// created already approved.
func BuildChain(dir Directory, committee string, now time.Time) ([]ApprovalStep, error) {
	chair, err := findApprover(dir, []string{auth.RoleLead, auth.RoleChairperson}, committee)
	if err != nil {
		return nil, fmt.Errorf("resolve approvers: %w", err)
	}
	faculty, err := findApprover(dir, []string{auth.RoleFacultyCoordinator}, committee)
	if err != nil {
		return nil, fmt.Errorf("resolve approvers: %w", err)
	}
	tpo, err := findApprover(dir, []string{auth.RoleTPO}, "")
	if err != nil {
		return nil, fmt.Errorf("resolve approvers: %w", err)
	}
	vp, err := findApprover(dir, []string{auth.RoleVicePrincipal}, "")
	if err != nil {
		return nil, fmt.Errorf("resolve approvers: %w", err)
	}
	principal, err := findApprover(dir, []string{auth.RolePrincipal}, "")
	if err != nil {
		return nil, fmt.Errorf("resolve approvers: %w", err)
	}

	var missing []string
	if chair == nil {
		missing = append(missing, "Chairperson/Lead")
	}
	if faculty == nil {
		missing = append(missing, auth.RoleFacultyCoordinator)
	}
	if tpo == nil {
		missing = append(missing, auth.RoleTPO)
	}
	if vp == nil {
		missing = append(missing, auth.RoleVicePrincipal)
	}
	if principal == nil {
		missing = append(missing, auth.RolePrincipal)
	}
	if len(missing) > 0 {
		return nil, &IncompleteChainError{Missing: missing}
	}

	chairRole := auth.RoleChairperson
	if chair.Role == auth.RoleLead {
		chairRole = auth.RoleLead
	}

	autoApprovedAt := now
	return []ApprovalStep{
		{ApproverID: chair.ID, Role: chairRole, Status: StepApproved, Comment: "Auto-approved", Timestamp: &autoApprovedAt},
		{ApproverID: faculty.ID, Role: auth.RoleFacultyCoordinator, Status: StepPending},
		{ApproverID: tpo.ID, Role: auth.RoleTPO, Status: StepPending},
		{ApproverID: vp.ID, Role: auth.RoleVicePrincipal, Status: StepPending},
		{ApproverID: principal.ID, Role: auth.RolePrincipal, Status: StepPending},
	}, nil
}
