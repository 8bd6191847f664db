package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smeworks/backoffice-api/internal/core/domain"
)

type testDependencies struct {
	repo    *RecordRepository
	mock    sqlmock.Sqlmock
	cleanup func()
}

func setupTest(t *testing.T) *testDependencies {
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "Error mocking DB")

	return &testDependencies{
		repo: NewRecordRepository(sqlx.NewDb(db, "pgx")),
		mock: mock,
		cleanup: func() {
			assert.NoError(t, mock.ExpectationsWereMet(), "Expectations were not met")
			db.Close()
		},
	}
}

func boolPtr(b bool) *bool { return &b }

func TestListEmployees(t *testing.T) {
	t.Parallel()

	hire := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{
		"employee_id", "employee_code", "first_name", "last_name", "email", "department_id",
		"position_id", "employment_type", "hire_date", "is_active",
	}

	testCases := []struct {
		name      string
		filter    domain.EmployeeFilter
		mockSetup func(sqlmock.Sqlmock)
		wantLen   int
		wantErr   error
	}{
		{
			name:   "No filters uses default page",
			filter: domain.EmployeeFilter{},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta("FROM employees ORDER BY employee_id LIMIT $1 OFFSET $2")).
					WithArgs(100, 0).
					WillReturnRows(sqlmock.NewRows(columns).
						AddRow("E001", "EMP-001", "Ana", "Lee", "ana@example.com", "D01", "P01", "full_time", hire, true).
						AddRow("E002", "EMP-002", "Ben", "Ong", "ben@example.com", nil, nil, "contract", hire, true))
			},
			wantLen: 2,
		},
		{
			name: "Department and active filters",
			filter: domain.EmployeeFilter{
				DepartmentID: "D01",
				IsActive:     boolPtr(false),
				Page:         domain.Page{Skip: 20, Limit: 10},
			},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE department_id = $1 AND is_active = $2 ORDER BY employee_id LIMIT $3 OFFSET $4")).
					WithArgs("D01", false, 10, 20).
					WillReturnRows(sqlmock.NewRows(columns))
			},
			wantLen: 0,
		},
		{
			name:   "Database error",
			filter: domain.EmployeeFilter{},
			mockSetup: func(m sqlmock.Sqlmock) {
				m.ExpectQuery("FROM employees").WillReturnError(errors.New("db error"))
			},
			wantErr: domain.ErrStoreUnavailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			deps := setupTest(t)
			defer deps.cleanup()

			tc.mockSetup(deps.mock)
			got, err := deps.repo.ListEmployees(context.Background(), tc.filter)

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tc.wantLen)
			assert.NotNil(t, got)
		})
	}
}

func TestGetEmployee(t *testing.T) {
	t.Parallel()

	t.Run("Found", func(t *testing.T) {
		deps := setupTest(t)
		defer deps.cleanup()

		rows := sqlmock.NewRows([]string{"employee_id", "employee_code", "first_name", "last_name", "email", "base_salary", "is_active"}).
			AddRow("E001", "EMP-001", "Ana", "Lee", "ana@example.com", 4200.5, true)
		deps.mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE employee_id = $1")).
			WithArgs("E001").
			WillReturnRows(rows)

		e, err := deps.repo.GetEmployee(context.Background(), "E001")
		require.NoError(t, err)
		assert.Equal(t, "Ana", e.FirstName)
		require.NotNil(t, e.BaseSalary)
		assert.InDelta(t, 4200.5, *e.BaseSalary, 0.001)
	})

	t.Run("Not found", func(t *testing.T) {
		deps := setupTest(t)
		defer deps.cleanup()

		deps.mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE employee_id = $1")).
			WithArgs("E404").
			WillReturnRows(sqlmock.NewRows([]string{"employee_id"}))

		_, err := deps.repo.GetEmployee(context.Background(), "E404")
		assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	})
}

func TestListDepartments_IncludesEmployeeCount(t *testing.T) {
	deps := setupTest(t)
	defer deps.cleanup()

	deps.mock.ExpectQuery(regexp.QuoteMeta("AS employee_count FROM departments d WHERE d.is_active = $1 ORDER BY d.department_id LIMIT $2 OFFSET $3")).
		WithArgs(true, 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"department_id", "department_name", "is_active", "employee_count"}).
			AddRow("D01", "Engineering", true, 7))

	got, err := deps.repo.ListDepartments(context.Background(), domain.DepartmentFilter{IsActive: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].EmployeeCount)
}

func TestListMaterials_LowStock(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		lowStock bool
		clause   string
	}{
		{name: "Low stock only", lowStock: true, clause: "WHERE category = $1 AND COALESCE(current_stock, 0) <= COALESCE(minimum_stock, 0) ORDER BY"},
		{name: "Healthy stock only", lowStock: false, clause: "WHERE category = $1 AND NOT (COALESCE(current_stock, 0) <= COALESCE(minimum_stock, 0)) ORDER BY"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			deps := setupTest(t)
			defer deps.cleanup()

			deps.mock.ExpectQuery(regexp.QuoteMeta(tc.clause)).
				WithArgs("consumable", 100, 0).
				WillReturnRows(sqlmock.NewRows([]string{"material_id", "material_code", "material_name", "category", "unit", "low_stock_alert"}).
					AddRow("M01", "MAT-01", "Glue", "consumable", "kg", tc.lowStock))

			got, err := deps.repo.ListMaterials(context.Background(), domain.MaterialFilter{Category: "consumable", LowStock: &tc.lowStock})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tc.lowStock, got[0].LowStockAlert)
		})
	}
}

func TestListTimeEntries_DateRange(t *testing.T) {
	deps := setupTest(t)
	defer deps.cleanup()

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)

	deps.mock.ExpectQuery(regexp.QuoteMeta("FROM time_entries WHERE employee_id = $1 AND entry_date >= $2 AND entry_date <= $3 ORDER BY entry_date DESC, entry_id LIMIT $4 OFFSET $5")).
		WithArgs("E001", from, to, 50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"entry_id", "employee_id", "entry_date", "start_time", "is_approved"}).
			AddRow("T01", "E001", from, "08:00:00", false))

	got, err := deps.repo.ListTimeEntries(context.Background(), domain.TimeEntryFilter{
		EmployeeID: "E001", StartDate: &from, EndDate: &to, Page: domain.Page{Limit: 50},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].StartTime)
	assert.Equal(t, "08:00:00", *got[0].StartTime)
}

func TestListLeaveRequestsAndTools_Filters(t *testing.T) {
	deps := setupTest(t)
	defer deps.cleanup()

	deps.mock.ExpectQuery(regexp.QuoteMeta("FROM leave_requests WHERE status = $1 AND leave_type = $2 ORDER BY")).
		WithArgs("pending", "sick", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"request_id", "leave_type", "status", "total_days"}).
			AddRow("L01", "sick", "pending", 2))
	deps.mock.ExpectQuery(regexp.QuoteMeta("FROM tools WHERE is_available = $1 AND condition = $2 ORDER BY tool_id")).
		WithArgs(true, "good", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"tool_id", "tool_code", "tool_name", "condition", "is_available"}).
			AddRow("TL1", "T-1", "Drill", "good", true))

	leaves, err := deps.repo.ListLeaveRequests(context.Background(), domain.LeaveRequestFilter{Status: "pending", LeaveType: "sick"})
	require.NoError(t, err)
	assert.Len(t, leaves, 1)

	tools, err := deps.repo.ListTools(context.Background(), domain.ToolFilter{IsAvailable: boolPtr(true), Condition: "good"})
	require.NoError(t, err)
	assert.Len(t, tools, 1)
}

func TestProjectsAndCustomers(t *testing.T) {
	deps := setupTest(t)
	defer deps.cleanup()

	deps.mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE status = $1 AND customer_id = $2 ORDER BY project_id")).
		WithArgs("active", "C01", 100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "project_code", "project_name", "status"}).
			AddRow("P01", "PRJ-01", "Warehouse", "active"))
	deps.mock.ExpectQuery(regexp.QuoteMeta("FROM projects WHERE project_id = $1")).
		WithArgs("P99").
		WillReturnRows(sqlmock.NewRows([]string{"project_id"}))
	deps.mock.ExpectQuery(regexp.QuoteMeta("FROM customers ORDER BY customer_id")).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"customer_id", "customer_code", "customer_name", "is_active"}).
			AddRow("C01", "CUS-01", "Acme", true))

	projects, err := deps.repo.ListProjects(context.Background(), domain.ProjectFilter{Status: "active", CustomerID: "C01"})
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	_, err = deps.repo.GetProject(context.Background(), "P99")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	customers, err := deps.repo.ListCustomers(context.Background(), domain.CustomerFilter{})
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestDashboardCounts(t *testing.T) {
	deps := setupTest(t)
	defer deps.cleanup()

	deps.mock.ExpectQuery(regexp.QuoteMeta("AS active_employees")).
		WillReturnRows(sqlmock.NewRows([]string{
			"active_employees", "active_departments", "active_projects", "total_projects",
			"active_materials", "low_stock_materials", "pending_leave", "available_tools", "total_tools",
		}).AddRow(12, 3, 2, 5, 40, 4, 1, 6, 8))

	c, err := deps.repo.DashboardCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardCounts{
		ActiveEmployees: 12, ActiveDepartments: 3, ActiveProjects: 2, TotalProjects: 5,
		ActiveMaterials: 40, LowStockMaterials: 4, PendingLeave: 1, AvailableTools: 6, TotalTools: 8,
	}, c)
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS departments")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), sqlx.NewDb(db, "pgx")))
	assert.NoError(t, mock.ExpectationsWereMet())
}
