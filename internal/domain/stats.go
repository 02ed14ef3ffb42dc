package domain

type DashboardStats struct {
	TotalLeads          int64
	NewLeads            int64
	TotalJobs           int64
	ActiveJobs          int64
	TotalPortfolioItems int64
	TotalContacts       int64
}
