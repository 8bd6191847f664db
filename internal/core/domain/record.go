package domain

import "time"

// Enumerations stored on SME records.
const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectOnHold    = "on_hold"
	ProjectCompleted = "completed"
	ProjectCancelled = "cancelled"

	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

var (
	ProjectStatuses    = []string{ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}
	LeaveStatuses      = []string{LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled}
	LeaveTypes         = []string{"annual", "sick", "personal", "maternity", "emergency"}
	MaterialCategories = []string{"raw_material", "consumable", "tool", "equipment", "spare_part"}
	ToolConditions     = []string{"good", "fair", "poor", "damaged"}
)

// Employee is a staff record. Detail-only fields are nil in listings.
type Employee struct {
	ID                   string     `json:"employee_id" db:"employee_id"`
	Code                 string     `json:"employee_code" db:"employee_code"`
	FirstName            string     `json:"first_name" db:"first_name"`
	LastName             string     `json:"last_name" db:"last_name"`
	Email                string     `json:"email" db:"email"`
	Phone                *string    `json:"phone,omitempty" db:"phone"`
	Address              *string    `json:"address,omitempty" db:"address"`
	NationalID           *string    `json:"national_id,omitempty" db:"national_id"`
	DepartmentID         *string    `json:"department_id" db:"department_id"`
	PositionID           *string    `json:"position_id" db:"position_id"`
	EmploymentType       *string    `json:"employment_type" db:"employment_type"`
	HireDate             *time.Time `json:"hire_date" db:"hire_date"`
	BaseSalary           *float64   `json:"base_salary,omitempty" db:"base_salary"`
	AnnualLeaveBalance   *int       `json:"annual_leave_balance,omitempty" db:"annual_leave_balance"`
	SickLeaveBalance     *int       `json:"sick_leave_balance,omitempty" db:"sick_leave_balance"`
	PersonalLeaveBalance *int       `json:"personal_leave_balance,omitempty" db:"personal_leave_balance"`
	IsActive             bool       `json:"is_active" db:"is_active"`
	CreatedAt            *time.Time `json:"created_at,omitempty" db:"created_at"`
}

type Department struct {
	ID               string   `json:"department_id" db:"department_id"`
	Name             string   `json:"department_name" db:"department_name"`
	Description      *string  `json:"description" db:"description"`
	ManagerID        *string  `json:"manager_id" db:"manager_id"`
	BudgetAllocation *float64 `json:"budget_allocation" db:"budget_allocation"`
	IsActive         bool     `json:"is_active" db:"is_active"`
	EmployeeCount    int      `json:"employee_count" db:"employee_count"`
}

type Project struct {
	ID                 string     `json:"project_id" db:"project_id"`
	Code               string     `json:"project_code" db:"project_code"`
	Name               string     `json:"project_name" db:"project_name"`
	Description        *string    `json:"description" db:"description"`
	CustomerID         *string    `json:"customer_id" db:"customer_id"`
	StartDate          *time.Time `json:"start_date" db:"start_date"`
	EndDate            *time.Time `json:"end_date" db:"end_date"`
	EstimatedDuration  *int       `json:"estimated_duration,omitempty" db:"estimated_duration"`
	ContractValue      *float64   `json:"contract_value" db:"contract_value"`
	EstimatedCost      *float64   `json:"estimated_cost" db:"estimated_cost"`
	ActualCost         *float64   `json:"actual_cost" db:"actual_cost"`
	Status             string     `json:"status" db:"status"`
	ProgressPercentage *float64   `json:"progress_percentage" db:"progress_percentage"`
	ProjectManagerID   *string    `json:"project_manager_id" db:"project_manager_id"`
	CreatedAt          *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

type Customer struct {
	ID            string   `json:"customer_id" db:"customer_id"`
	Code          string   `json:"customer_code" db:"customer_code"`
	Name          string   `json:"customer_name" db:"customer_name"`
	ContactPerson *string  `json:"contact_person" db:"contact_person"`
	Email         *string  `json:"email" db:"email"`
	Phone         *string  `json:"phone" db:"phone"`
	BusinessType  *string  `json:"business_type" db:"business_type"`
	CreditLimit   *float64 `json:"credit_limit" db:"credit_limit"`
	PaymentTerms  *int     `json:"payment_terms" db:"payment_terms"`
	IsActive      bool     `json:"is_active" db:"is_active"`
}

type Material struct {
	ID            string   `json:"material_id" db:"material_id"`
	Code          string   `json:"material_code" db:"material_code"`
	Name          string   `json:"material_name" db:"material_name"`
	Category      string   `json:"category" db:"category"`
	Unit          string   `json:"unit" db:"unit"`
	CurrentStock  *float64 `json:"current_stock" db:"current_stock"`
	MinimumStock  *float64 `json:"minimum_stock" db:"minimum_stock"`
	UnitCost      *float64 `json:"unit_cost" db:"unit_cost"`
	IsActive      bool     `json:"is_active" db:"is_active"`
	LowStockAlert bool     `json:"low_stock_alert" db:"low_stock_alert"`
}

type TimeEntry struct {
	ID              string     `json:"entry_id" db:"entry_id"`
	EmployeeID      *string    `json:"employee_id" db:"employee_id"`
	ProjectID       *string    `json:"project_id" db:"project_id"`
	EntryDate       time.Time  `json:"entry_date" db:"entry_date"`
	StartTime       *string    `json:"start_time" db:"start_time"`
	EndTime         *string    `json:"end_time" db:"end_time"`
	NormalHours     *float64   `json:"normal_hours" db:"normal_hours"`
	OTHour1         *float64   `json:"ot_hour_1" db:"ot_hour_1"`
	OTHour2         *float64   `json:"ot_hour_2" db:"ot_hour_2"`
	OTHour3         *float64   `json:"ot_hour_3" db:"ot_hour_3"`
	WorkDescription *string    `json:"work_description" db:"work_description"`
	Location        *string    `json:"location" db:"location"`
	IsApproved      bool       `json:"is_approved" db:"is_approved"`
	ApprovedBy      *string    `json:"approved_by" db:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at" db:"approved_at"`
}

type LeaveRequest struct {
	ID                 string     `json:"request_id" db:"request_id"`
	EmployeeID         *string    `json:"employee_id" db:"employee_id"`
	LeaveType          string     `json:"leave_type" db:"leave_type"`
	StartDate          time.Time  `json:"start_date" db:"start_date"`
	EndDate            time.Time  `json:"end_date" db:"end_date"`
	TotalDays          int        `json:"total_days" db:"total_days"`
	Reason             *string    `json:"reason" db:"reason"`
	Status             string     `json:"status" db:"status"`
	ApprovedBy         *string    `json:"approved_by" db:"approved_by"`
	ApprovedAt         *time.Time `json:"approved_at" db:"approved_at"`
	RejectionReason    *string    `json:"rejection_reason" db:"rejection_reason"`
	CoverageEmployeeID *string    `json:"coverage_employee_id" db:"coverage_employee_id"`
	CreatedAt          *time.Time `json:"created_at" db:"created_at"`
}

type Tool struct {
	ID                  string     `json:"tool_id" db:"tool_id"`
	Code                string     `json:"tool_code" db:"tool_code"`
	Name                string     `json:"tool_name" db:"tool_name"`
	Category            *string    `json:"category" db:"category"`
	Brand               *string    `json:"brand" db:"brand"`
	Model               *string    `json:"model" db:"model"`
	SerialNumber        *string    `json:"serial_number" db:"serial_number"`
	PurchaseCost        *float64   `json:"purchase_cost" db:"purchase_cost"`
	CurrentValue        *float64   `json:"current_value" db:"current_value"`
	Condition           string     `json:"condition" db:"condition"`
	IsAvailable         bool       `json:"is_available" db:"is_available"`
	Location            *string    `json:"location" db:"location"`
	LastMaintenanceDate *time.Time `json:"last_maintenance_date" db:"last_maintenance_date"`
	NextMaintenanceDate *time.Time `json:"next_maintenance_date" db:"next_maintenance_date"`
}

// Record filters. Empty strings and nil pointers mean "no filter".

type EmployeeFilter struct {
	DepartmentID string
	IsActive     *bool
	Page         Page
}

type DepartmentFilter struct {
	IsActive *bool
	Page     Page
}

type ProjectFilter struct {
	Status     string
	CustomerID string
	Page       Page
}

type CustomerFilter struct {
	IsActive *bool
	Page     Page
}

type MaterialFilter struct {
	Category string
	LowStock *bool
	Page     Page
}

type TimeEntryFilter struct {
	EmployeeID string
	ProjectID  string
	StartDate  *time.Time
	EndDate    *time.Time
	Page       Page
}

type LeaveRequestFilter struct {
	EmployeeID string
	Status     string
	LeaveType  string
	Page       Page
}

type ToolFilter struct {
	Category    string
	IsAvailable *bool
	Condition   string
	Page        Page
}

// DashboardCounts are the raw aggregates the dashboard is derived from.
type DashboardCounts struct {
	ActiveEmployees   int64 `db:"active_employees"`
	ActiveDepartments int64 `db:"active_departments"`
	ActiveProjects    int64 `db:"active_projects"`
	TotalProjects     int64 `db:"total_projects"`
	ActiveMaterials   int64 `db:"active_materials"`
	LowStockMaterials int64 `db:"low_stock_materials"`
	PendingLeave      int64 `db:"pending_leave"`
	AvailableTools    int64 `db:"available_tools"`
	TotalTools        int64 `db:"total_tools"`
}
