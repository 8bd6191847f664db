package domain

import (
	"math"
	"time"
)

type Dashboard struct {
	Employees     EmployeeStats `json:"employees"`
	Projects      ProjectStats  `json:"projects"`
	Materials     MaterialStats `json:"materials"`
	LeaveRequests LeaveStats    `json:"leave_requests"`
	Tools         ToolStats     `json:"tools"`
	Timestamp     time.Time     `json:"timestamp"`
}

type EmployeeStats struct {
	Total       int64 `json:"total"`
	Departments int64 `json:"departments"`
}

type ProjectStats struct {
	Active         int64   `json:"active"`
	Total          int64   `json:"total"`
	CompletionRate float64 `json:"completion_rate"`
}

type MaterialStats struct {
	Total                int64   `json:"total"`
	LowStock             int64   `json:"low_stock"`
	StockAlertPercentage float64 `json:"stock_alert_percentage"`
}

type LeaveStats struct {
	Pending int64 `json:"pending"`
}

type ToolStats struct {
	Available       int64   `json:"available"`
	Total           int64   `json:"total"`
	UtilizationRate float64 `json:"utilization_rate"`
}

// NewDashboard derives rates from raw counts. Every non-active project
// counts toward the completion rate.
func NewDashboard(c DashboardCounts, now time.Time) Dashboard {
	return Dashboard{
		Employees: EmployeeStats{Total: c.ActiveEmployees, Departments: c.ActiveDepartments},
		Projects: ProjectStats{
			Active:         c.ActiveProjects,
			Total:          c.TotalProjects,
			CompletionRate: percent(c.TotalProjects-c.ActiveProjects, c.TotalProjects),
		},
		Materials: MaterialStats{
			Total:                c.ActiveMaterials,
			LowStock:             c.LowStockMaterials,
			StockAlertPercentage: percent(c.LowStockMaterials, c.ActiveMaterials),
		},
		LeaveRequests: LeaveStats{Pending: c.PendingLeave},
		Tools: ToolStats{
			Available:       c.AvailableTools,
			Total:           c.TotalTools,
			UtilizationRate: percent(c.TotalTools-c.AvailableTools, c.TotalTools),
		},
		Timestamp: now,
	}
}

// percent returns part/whole as a percentage rounded to two decimals, or 0
// when whole is 0.
func percent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
