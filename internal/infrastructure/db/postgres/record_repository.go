package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

const (
	employeeListColumns = `employee_id, employee_code, first_name, last_name, email, department_id,
		position_id, employment_type, hire_date, is_active`

	employeeDetailColumns = employeeListColumns + `, phone, address, national_id,
		base_salary::float8 AS base_salary, annual_leave_balance, sick_leave_balance,
		personal_leave_balance, created_at`

	departmentColumns = `d.department_id, d.department_name, d.description, d.manager_id,
		d.budget_allocation::float8 AS budget_allocation, d.is_active,
		(SELECT COUNT(*) FROM employees e WHERE e.department_id = d.department_id) AS employee_count`

	projectListColumns = `project_id, project_code, project_name, description, customer_id,
		start_date, end_date, contract_value::float8 AS contract_value,
		estimated_cost::float8 AS estimated_cost, actual_cost::float8 AS actual_cost, status,
		progress_percentage::float8 AS progress_percentage, project_manager_id`

	projectDetailColumns = projectListColumns + `, estimated_duration, created_at, updated_at`

	customerColumns = `customer_id, customer_code, customer_name, contact_person, email, phone,
		business_type, credit_limit::float8 AS credit_limit, payment_terms, is_active`

	lowStockExpr = `COALESCE(current_stock, 0) <= COALESCE(minimum_stock, 0)`

	materialColumns = `material_id, material_code, material_name, category, unit,
		current_stock::float8 AS current_stock, minimum_stock::float8 AS minimum_stock,
		unit_cost::float8 AS unit_cost, is_active, (` + lowStockExpr + `) AS low_stock_alert`

	timeEntryColumns = `entry_id, employee_id, project_id, entry_date, start_time::text AS start_time,
		end_time::text AS end_time, normal_hours::float8 AS normal_hours, ot_hour_1::float8 AS ot_hour_1,
		ot_hour_2::float8 AS ot_hour_2, ot_hour_3::float8 AS ot_hour_3, work_description, location,
		is_approved, approved_by, approved_at`

	leaveRequestColumns = `request_id, employee_id, leave_type, start_date, end_date, total_days, reason,
		status, approved_by, approved_at, rejection_reason, coverage_employee_id, created_at`

	toolColumns = `tool_id, tool_code, tool_name, category, brand, model, serial_number,
		purchase_cost::float8 AS purchase_cost, current_value::float8 AS current_value, condition,
		is_available, location, last_maintenance_date, next_maintenance_date`

	dashboardQuery = `SELECT
		(SELECT COUNT(*) FROM employees WHERE is_active) AS active_employees,
		(SELECT COUNT(*) FROM departments WHERE is_active) AS active_departments,
		(SELECT COUNT(*) FROM projects WHERE status = 'active') AS active_projects,
		(SELECT COUNT(*) FROM projects) AS total_projects,
		(SELECT COUNT(*) FROM materials WHERE is_active) AS active_materials,
		(SELECT COUNT(*) FROM materials WHERE is_active AND ` + lowStockExpr + `) AS low_stock_materials,
		(SELECT COUNT(*) FROM leave_requests WHERE status = 'pending') AS pending_leave,
		(SELECT COUNT(*) FROM tools WHERE is_available) AS available_tools,
		(SELECT COUNT(*) FROM tools) AS total_tools`
)

// RecordRepository implements ports.RecordRepository on Postgres.
type RecordRepository struct {
	db *sqlx.DB
}

func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

func (r *RecordRepository) ListEmployees(ctx context.Context, f domain.EmployeeFilter) ([]domain.Employee, error) {
	var w where
	if f.DepartmentID != "" {
		w.eq("department_id", f.DepartmentID)
	}
	if f.IsActive != nil {
		w.eq("is_active", *f.IsActive)
	}
	q := "SELECT " + employeeListColumns + " FROM employees" + w.String() + " ORDER BY employee_id" + w.page(f.Page)

	out := []domain.Employee{}
	if err := r.selectAll(ctx, "list employees", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) GetEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	var e domain.Employee
	q := "SELECT " + employeeDetailColumns + " FROM employees WHERE employee_id = $1"
	if err := r.get(ctx, "get employee", &e, q, id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *RecordRepository) ListDepartments(ctx context.Context, f domain.DepartmentFilter) ([]domain.Department, error) {
	var w where
	if f.IsActive != nil {
		w.eq("d.is_active", *f.IsActive)
	}
	q := "SELECT " + departmentColumns + " FROM departments d" + w.String() + " ORDER BY d.department_id" + w.page(f.Page)

	out := []domain.Department{}
	if err := r.selectAll(ctx, "list departments", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) ListProjects(ctx context.Context, f domain.ProjectFilter) ([]domain.Project, error) {
	var w where
	if f.Status != "" {
		w.eq("status", f.Status)
	}
	if f.CustomerID != "" {
		w.eq("customer_id", f.CustomerID)
	}
	q := "SELECT " + projectListColumns + " FROM projects" + w.String() + " ORDER BY project_id" + w.page(f.Page)

	out := []domain.Project{}
	if err := r.selectAll(ctx, "list projects", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	q := "SELECT " + projectDetailColumns + " FROM projects WHERE project_id = $1"
	if err := r.get(ctx, "get project", &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RecordRepository) ListCustomers(ctx context.Context, f domain.CustomerFilter) ([]domain.Customer, error) {
	var w where
	if f.IsActive != nil {
		w.eq("is_active", *f.IsActive)
	}
	q := "SELECT " + customerColumns + " FROM customers" + w.String() + " ORDER BY customer_id" + w.page(f.Page)

	out := []domain.Customer{}
	if err := r.selectAll(ctx, "list customers", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) ListMaterials(ctx context.Context, f domain.MaterialFilter) ([]domain.Material, error) {
	var w where
	if f.Category != "" {
		w.eq("category", f.Category)
	}
	if f.LowStock != nil {
		if *f.LowStock {
			w.raw(lowStockExpr)
		} else {
			w.raw("NOT (" + lowStockExpr + ")")
		}
	}
	q := "SELECT " + materialColumns + " FROM materials" + w.String() + " ORDER BY material_id" + w.page(f.Page)

	out := []domain.Material{}
	if err := r.selectAll(ctx, "list materials", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) ListTimeEntries(ctx context.Context, f domain.TimeEntryFilter) ([]domain.TimeEntry, error) {
	var w where
	if f.EmployeeID != "" {
		w.eq("employee_id", f.EmployeeID)
	}
	if f.ProjectID != "" {
		w.eq("project_id", f.ProjectID)
	}
	if f.StartDate != nil {
		w.cmp("entry_date", ">=", *f.StartDate)
	}
	if f.EndDate != nil {
		w.cmp("entry_date", "<=", *f.EndDate)
	}
	q := "SELECT " + timeEntryColumns + " FROM time_entries" + w.String() + " ORDER BY entry_date DESC, entry_id" + w.page(f.Page)

	out := []domain.TimeEntry{}
	if err := r.selectAll(ctx, "list time entries", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) ListLeaveRequests(ctx context.Context, f domain.LeaveRequestFilter) ([]domain.LeaveRequest, error) {
	var w where
	if f.EmployeeID != "" {
		w.eq("employee_id", f.EmployeeID)
	}
	if f.Status != "" {
		w.eq("status", f.Status)
	}
	if f.LeaveType != "" {
		w.eq("leave_type", f.LeaveType)
	}
	q := "SELECT " + leaveRequestColumns + " FROM leave_requests" + w.String() + " ORDER BY created_at DESC, request_id" + w.page(f.Page)

	out := []domain.LeaveRequest{}
	if err := r.selectAll(ctx, "list leave requests", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *RecordRepository) ListTools(ctx context.Context, f domain.ToolFilter) ([]domain.Tool, error) {
	var w where
	if f.Category != "" {
		w.eq("category", f.Category)
	}
	if f.IsAvailable != nil {
		w.eq("is_available", *f.IsAvailable)
	}
	if f.Condition != "" {
		w.eq("condition", f.Condition)
	}
	q := "SELECT " + toolColumns + " FROM tools" + w.String() + " ORDER BY tool_id" + w.page(f.Page)

	out := []domain.Tool{}
	if err := r.selectAll(ctx, "list tools", &out, q, w.args); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardCounts gathers every aggregate in a single round trip.
func (r *RecordRepository) DashboardCounts(ctx context.Context) (domain.DashboardCounts, error) {
	var c domain.DashboardCounts
	if err := r.get(ctx, "dashboard counts", &c, dashboardQuery); err != nil {
		return domain.DashboardCounts{}, err
	}
	return c, nil
}

func (r *RecordRepository) selectAll(ctx context.Context, op string, dest any, q string, args []any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.db.SelectContext(ctx, dest, q, args...); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
	}
	return nil
}

func (r *RecordRepository) get(ctx context.Context, op string, dest any, q string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.db.GetContext(ctx, dest, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrRecordNotFound
		}
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
	}
	return nil
}
