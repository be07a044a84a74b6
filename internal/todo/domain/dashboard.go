package domain

// DashboardStats is the aggregate snapshot shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers      int64
	TotalTasks      int64
	CompletedTasks  int64
	PendingTasks    int64
	TasksByCategory map[string]int64
	RecentTasks     []Task
}
