package ports

import (
	"context"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

// RecordRepository reads the SME back-office records.
type RecordRepository interface {
	ListEmployees(ctx context.Context, f domain.EmployeeFilter) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	ListDepartments(ctx context.Context, f domain.DepartmentFilter) ([]domain.Department, error)
	ListProjects(ctx context.Context, f domain.ProjectFilter) ([]domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListCustomers(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error)
	ListMaterials(ctx context.Context, f domain.MaterialFilter) ([]domain.Material, error)
	ListTimeEntries(ctx context.Context, f domain.TimeEntryFilter) ([]domain.TimeEntry, error)
	ListLeaveRequests(ctx context.Context, f domain.LeaveRequestFilter) ([]domain.LeaveRequest, error)
	ListTools(ctx context.Context, f domain.ToolFilter) ([]domain.Tool, error)
	DashboardCounts(ctx context.Context) (domain.DashboardCounts, error)
}

// RecordService is the use-case layer over RecordRepository.
type RecordService interface {
	RecordRepository
	Dashboard(ctx context.Context) (domain.Dashboard, error)
}
