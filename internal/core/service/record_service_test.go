package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

type stubRecordRepo struct {
	lastProjects domain.ProjectFilter
	lastEntries  domain.TimeEntryFilter
	counts       domain.DashboardCounts
	countsErr    error
}

func (r *stubRecordRepo) ListEmployees(context.Context, domain.EmployeeFilter) ([]domain.Employee, error) {
	return nil, nil
}
func (r *stubRecordRepo) GetEmployee(context.Context, string) (*domain.Employee, error) {
	return nil, domain.ErrRecordNotFound
}
func (r *stubRecordRepo) ListDepartments(context.Context, domain.DepartmentFilter) ([]domain.Department, error) {
	return nil, nil
}
func (r *stubRecordRepo) ListProjects(_ context.Context, f domain.ProjectFilter) ([]domain.Project, error) {
	r.lastProjects = f
	return []domain.Project{{ID: "P1"}}, nil
}
func (r *stubRecordRepo) GetProject(context.Context, string) (*domain.Project, error) {
	return nil, domain.ErrRecordNotFound
}
func (r *stubRecordRepo) ListCustomers(context.Context, domain.CustomerFilter) ([]domain.Customer, error) {
	return nil, nil
}
func (r *stubRecordRepo) ListMaterials(context.Context, domain.MaterialFilter) ([]domain.Material, error) {
	return nil, nil
}
func (r *stubRecordRepo) ListTimeEntries(_ context.Context, f domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	r.lastEntries = f
	return nil, nil
}
func (r *stubRecordRepo) ListLeaveRequests(context.Context, domain.LeaveRequestFilter) ([]domain.LeaveRequest, error) {
	return nil, nil
}
func (r *stubRecordRepo) ListTools(context.Context, domain.ToolFilter) ([]domain.Tool, error) {
	return nil, nil
}
func (r *stubRecordRepo) DashboardCounts(context.Context) (domain.DashboardCounts, error) {
	return r.counts, r.countsErr
}

func TestRecordService_ListProjects_DefaultsPage(t *testing.T) {
	repo := &stubRecordRepo{}
	svc := NewRecordService(repo)

	if _, err := svc.ListProjects(context.Background(), domain.ProjectFilter{Status: domain.ProjectActive}); err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if repo.lastProjects.Page.Limit != domain.DefaultLimit {
		t.Fatalf("limit = %d, want default", repo.lastProjects.Page.Limit)
	}
}

func TestRecordService_RejectsUnknownEnumFilters(t *testing.T) {
	svc := NewRecordService(&stubRecordRepo{})
	ctx := context.Background()

	if _, err := svc.ListProjects(ctx, domain.ProjectFilter{Status: "finished"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("project status: got %v", err)
	}
	if _, err := svc.ListMaterials(ctx, domain.MaterialFilter{Category: "food"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("material category: got %v", err)
	}
	if _, err := svc.ListLeaveRequests(ctx, domain.LeaveRequestFilter{LeaveType: "vacation"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("leave type: got %v", err)
	}
	if _, err := svc.ListTools(ctx, domain.ToolFilter{Condition: "broken"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("tool condition: got %v", err)
	}
}

func TestRecordService_ListTimeEntries_RejectsInvertedRange(t *testing.T) {
	svc := NewRecordService(&stubRecordRepo{})
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, -1)

	_, err := svc.ListTimeEntries(context.Background(), domain.TimeEntryFilter{StartDate: &start, EndDate: &end})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordService_Dashboard(t *testing.T) {
	repo := &stubRecordRepo{counts: domain.DashboardCounts{ActiveProjects: 2, TotalProjects: 4}}
	svc := NewRecordService(repo)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if d.Projects.CompletionRate != 50 {
		t.Fatalf("completion rate = %v", d.Projects.CompletionRate)
	}

	repo.countsErr = domain.ErrStoreUnavailable
	if _, err := svc.Dashboard(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
