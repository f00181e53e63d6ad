package analytics

import "campushire/internal/common"

// Read-side aggregate shapes. Everything here is derived; nothing mutates.

type CompanyOverview struct {
	TotalOpportunities   int `json:"total_opportunities"`
	ActiveOpportunities  int `json:"active_opportunities"`
	PendingOpportunities int `json:"pending_opportunities"`
	TotalApplications    int `json:"total_applications"`
	NewApplications      int `json:"new_applications"`
	InterviewCount       int `json:"interview_count"`
	HiredCount           int `json:"hired_count"`
	ConversionRate       int `json:"conversion_rate"`
	InterviewToHireRate  int `json:"interview_to_hire_rate"`
}

type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

type OpportunityCount struct {
	OpportunityID common.UUID `json:"opportunity_id"`
	Title         string      `json:"title"`
	Applications  int         `json:"applications"`
}

type CollegeCount struct {
	College string `json:"college"`
	Count   int    `json:"count"`
}

type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

type CompanyReport struct {
	Overview             CompanyOverview    `json:"overview"`
	ApplicationsByStatus map[string]int     `json:"applications_by_status"`
	ApplicationsOverTime []DailyCount       `json:"applications_over_time"`
	TopOpportunities     []OpportunityCount `json:"top_opportunities"`
	CollegeDemographics  []CollegeCount     `json:"college_demographics"`
	SkillsAnalysis       []SkillCount       `json:"skills_analysis"`
	AverageSalaryLakhs   *float64           `json:"average_salary_lakhs,omitempty"`
	WindowDays           int                `json:"window_days"`
}

type StudentOverview struct {
	ActiveOpportunities int `json:"active_opportunities"`
	Applications        int `json:"applications"`
	PendingApplications int `json:"pending_applications"`
	Interviews          int `json:"interviews"`
	ProfileCompletion   int `json:"profile_completion"`
}

type AdminOverview struct {
	TotalStudents        int      `json:"total_students"`
	TotalCompanies       int      `json:"total_companies"`
	TotalOpportunities   int      `json:"total_opportunities"`
	ActiveOpportunities  int      `json:"active_opportunities"`
	PendingOpportunities int      `json:"pending_opportunities"`
	TotalApplications    int      `json:"total_applications"`
	PlacedStudents       int      `json:"placed_students"`
	AveragePackageLakhs  *float64 `json:"average_package_lakhs,omitempty"`
}
