package dto

// DashboardStats aggregates the headline numbers for the landing view.
type DashboardStats struct {
	TotalProjects   int64   `json:"total_projects"`
	TasksInProgress int64   `json:"tasks_in_progress"`
	ActiveMembers   int64   `json:"active_members"`
	TotalBudget     float64 `json:"total_budget"`
}
