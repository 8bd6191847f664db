package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smeworks/backoffice-api/internal/core/domain"
	"github.com/smeworks/backoffice-api/internal/core/ports"
)

// RecordHandler serves the read-only SME record listings and the dashboard.
type RecordHandler struct {
	records ports.RecordService
}

func NewRecordHandler(records ports.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// ListEmployees
//
// @Summary      List employees
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip           query     int     false  "Offset"
// @Param        limit          query     int     false  "Page size (1-1000)"
// @Param        department_id  query     string  false  "Department"
// @Param        is_active      query     bool    false  "Active flag"
// @Success      200            {array}   domain.Employee
// @Failure      400            {object}  errorBody
// @Failure      401            {object}  errorBody
// @Router       /v1/employees [get]
func (h *RecordHandler) ListEmployees(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	active, err := boolParam(c, "is_active")
	if err != nil {
		return err
	}

	out, err := h.records.ListEmployees(c.Request().Context(), domain.EmployeeFilter{
		DepartmentID: c.QueryParam("department_id"),
		IsActive:     active,
		Page:         page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// GetEmployee
//
// @Summary      Get employee
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Employee ID"
// @Success      200  {object}  domain.Employee
// @Failure      404  {object}  errorBody
// @Router       /v1/employees/{id} [get]
func (h *RecordHandler) GetEmployee(c echo.Context) error {
	e, err := h.records.GetEmployee(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// ListDepartments
//
// @Summary      List departments
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip       query    int   false  "Offset"
// @Param        limit      query    int   false  "Page size (1-1000)"
// @Param        is_active  query    bool  false  "Active flag"
// @Success      200        {array}  domain.Department
// @Router       /v1/departments [get]
func (h *RecordHandler) ListDepartments(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	active, err := boolParam(c, "is_active")
	if err != nil {
		return err
	}

	out, err := h.records.ListDepartments(c.Request().Context(), domain.DepartmentFilter{IsActive: active, Page: page})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListProjects
//
// @Summary      List projects
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip         query    int     false  "Offset"
// @Param        limit        query    int     false  "Page size (1-1000)"
// @Param        status       query    string  false  "Status"  Enums(planning, active, on_hold, completed, cancelled)
// @Param        customer_id  query    string  false  "Customer"
// @Success      200          {array}  domain.Project
// @Router       /v1/projects [get]
func (h *RecordHandler) ListProjects(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	out, err := h.records.ListProjects(c.Request().Context(), domain.ProjectFilter{
		Status:     c.QueryParam("status"),
		CustomerID: c.QueryParam("customer_id"),
		Page:       page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// GetProject
//
// @Summary      Get project
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorBody
// @Router       /v1/projects/{id} [get]
func (h *RecordHandler) GetProject(c echo.Context) error {
	p, err := h.records.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// ListCustomers
//
// @Summary      List customers
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip       query    int   false  "Offset"
// @Param        limit      query    int   false  "Page size (1-1000)"
// @Param        is_active  query    bool  false  "Active flag"
// @Success      200        {array}  domain.Customer
// @Router       /v1/customers [get]
func (h *RecordHandler) ListCustomers(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	active, err := boolParam(c, "is_active")
	if err != nil {
		return err
	}

	out, err := h.records.ListCustomers(c.Request().Context(), domain.CustomerFilter{IsActive: active, Page: page})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListMaterials
//
// @Summary      List materials
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip       query    int     false  "Offset"
// @Param        limit      query    int     false  "Page size (1-1000)"
// @Param        category   query    string  false  "Category"
// @Param        low_stock  query    bool    false  "Only materials at or below minimum stock"
// @Success      200        {array}  domain.Material
// @Router       /v1/materials [get]
func (h *RecordHandler) ListMaterials(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	low, err := boolParam(c, "low_stock")
	if err != nil {
		return err
	}

	out, err := h.records.ListMaterials(c.Request().Context(), domain.MaterialFilter{
		Category: c.QueryParam("category"),
		LowStock: low,
		Page:     page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListTimeEntries
//
// @Summary      List time entries
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip         query    int     false  "Offset"
// @Param        limit        query    int     false  "Page size (1-1000)"
// @Param        employee_id  query    string  false  "Employee"
// @Param        project_id   query    string  false  "Project"
// @Param        start_date   query    string  false  "Inclusive lower bound (YYYY-MM-DD)"
// @Param        end_date     query    string  false  "Inclusive upper bound (YYYY-MM-DD)"
// @Success      200          {array}  domain.TimeEntry
// @Router       /v1/time-entries [get]
func (h *RecordHandler) ListTimeEntries(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	from, err := dateParam(c, "start_date")
	if err != nil {
		return err
	}
	to, err := dateParam(c, "end_date")
	if err != nil {
		return err
	}

	out, err := h.records.ListTimeEntries(c.Request().Context(), domain.TimeEntryFilter{
		EmployeeID: c.QueryParam("employee_id"),
		ProjectID:  c.QueryParam("project_id"),
		StartDate:  from,
		EndDate:    to,
		Page:       page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListLeaveRequests
//
// @Summary      List leave requests
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip         query    int     false  "Offset"
// @Param        limit        query    int     false  "Page size (1-1000)"
// @Param        employee_id  query    string  false  "Employee"
// @Param        status       query    string  false  "Status"
// @Param        leave_type   query    string  false  "Leave type"
// @Success      200          {array}  domain.LeaveRequest
// @Router       /v1/leave-requests [get]
func (h *RecordHandler) ListLeaveRequests(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}

	out, err := h.records.ListLeaveRequests(c.Request().Context(), domain.LeaveRequestFilter{
		EmployeeID: c.QueryParam("employee_id"),
		Status:     c.QueryParam("status"),
		LeaveType:  c.QueryParam("leave_type"),
		Page:       page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// ListTools
//
// @Summary      List tools
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        skip          query    int     false  "Offset"
// @Param        limit         query    int     false  "Page size (1-1000)"
// @Param        category      query    string  false  "Category"
// @Param        is_available  query    bool    false  "Availability"
// @Param        condition     query    string  false  "Condition"
// @Success      200           {array}  domain.Tool
// @Router       /v1/tools [get]
func (h *RecordHandler) ListTools(c echo.Context) error {
	page, err := pageParams(c)
	if err != nil {
		return err
	}
	available, err := boolParam(c, "is_available")
	if err != nil {
		return err
	}

	out, err := h.records.ListTools(c.Request().Context(), domain.ToolFilter{
		Category:    c.QueryParam("category"),
		IsAvailable: available,
		Condition:   c.QueryParam("condition"),
		Page:        page,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

// Dashboard returns aggregate counts and rates.
//
// @Summary      Dashboard analytics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Dashboard
// @Failure      403  {object}  errorBody
// @Router       /v1/analytics/dashboard [get]
func (h *RecordHandler) Dashboard(c echo.Context) error {
	d, err := h.records.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
