package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// RecordService validates listing filters before they reach the store and
// derives the dashboard.
type RecordService struct {
	repo ports.RecordRepository
	now  func() time.Time
}

func NewRecordService(repo ports.RecordRepository) *RecordService {
	return &RecordService{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

func (s *RecordService) ListEmployees(ctx context.Context, f domain.EmployeeFilter) ([]domain.Employee, error) {
	f.Page = f.Page.Normalize()
	return s.repo.ListEmployees(ctx, f)
}

func (s *RecordService) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

func (s *RecordService) ListDepartments(ctx context.Context, f domain.DepartmentFilter) ([]domain.Department, error) {
	f.Page = f.Page.Normalize()
	return s.repo.ListDepartments(ctx, f)
}

func (s *RecordService) ListProjects(ctx context.Context, f domain.ProjectFilter) ([]domain.Project, error) {
	if err := oneOf("status", f.Status, domain.ProjectStatuses); err != nil {
		return nil, err
	}
	f.Page = f.Page.Normalize()
	return s.repo.ListProjects(ctx, f)
}

func (s *RecordService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.GetProject(ctx, id)
}

func (s *RecordService) ListCustomers(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error) {
	f.Page = f.Page.Normalize()
	return s.repo.ListCustomers(ctx, f)
}

func (s *RecordService) ListMaterials(ctx context.Context, f domain.MaterialFilter) ([]domain.Material, error) {
	if err := oneOf("category", f.Category, domain.MaterialCategories); err != nil {
		return nil, err
	}
	f.Page = f.Page.Normalize()
	return s.repo.ListMaterials(ctx, f)
}

func (s *RecordService) ListTimeEntries(ctx context.Context, f domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, fmt.Errorf("%w: end_date is before start_date", domain.ErrInvalidInput)
	}
	f.Page = f.Page.Normalize()
	return s.repo.ListTimeEntries(ctx, f)
}

func (s *RecordService) ListLeaveRequests(ctx context.Context, f domain.LeaveRequestFilter) ([]domain.LeaveRequest, error) {
	if err := oneOf("status", f.Status, domain.LeaveStatuses); err != nil {
		return nil, err
	}
	if err := oneOf("leave_type", f.LeaveType, domain.LeaveTypes); err != nil {
		return nil, err
	}
	f.Page = f.Page.Normalize()
	return s.repo.ListLeaveRequests(ctx, f)
}

func (s *RecordService) ListTools(ctx context.Context, f domain.ToolFilter) ([]domain.Tool, error) {
	if err := oneOf("condition", f.Condition, domain.ToolConditions); err != nil {
		return nil, err
	}
	f.Page = f.Page.Normalize()
	return s.repo.ListTools(ctx, f)
}

func (s *RecordService) DashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	return s.repo.DashboardCounts(ctx)
}

func (s *RecordService) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	counts, err := s.repo.DashboardCounts(ctx)
	if err != nil {
		return domain.Dashboard{}, err
	}
	return domain.NewDashboard(counts, s.now()), nil
}

// oneOf accepts an empty value (no filter) or a member of allowed.
func oneOf(field, value string, allowed []string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return fmt.Errorf("%w: %s must be one of %v", domain.ErrInvalidInput, field, allowed)
}
