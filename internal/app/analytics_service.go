package app

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"campushire/internal/common"
	"campushire/internal/domain/analytics"
	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/profile"
	"campushire/internal/domain/user"
)

type AnalyticsService struct {
	repo          analytics.Repository
	opportunities opportunity.Repository
	students      profile.StudentRepository
	users         user.Repository
	logger        *slog.Logger
}

func NewAnalyticsService(repo analytics.Repository, opportunities opportunity.Repository, students profile.StudentRepository, users user.Repository, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, opportunities: opportunities, students: students, users: users, logger: logger}
}

const (
	defaultReportWindowDays = 30
	maxReportWindowDays     = 365
	topOpportunityLimit     = 5
	collegeBreakdownLimit   = 5
	skillBreakdownLimit     = 10
)

// CompanyReport assembles the full dashboard for one company account.
func (s *AnalyticsService) CompanyReport(ctx context.Context, companyID common.UUID, windowDays int) (*analytics.CompanyReport, error) {
	if windowDays <= 0 {
		windowDays = defaultReportWindowDays
	}
	if windowDays > maxReportWindowDays {
		windowDays = maxReportWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)

	posted, err := s.opportunities.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, opp := range posted {
		if opp.Active {
			active++
		}
	}

	total, err := s.repo.CountApplicationsByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	lastDay, err := s.repo.CountApplicationsByCompanySince(ctx, companyID, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}
	byStatus, err := s.repo.StatusBreakdownByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyApplicationCounts(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopOpportunityCounts(ctx, companyID, topOpportunityLimit)
	if err != nil {
		return nil, err
	}
	colleges, err := s.repo.CollegeBreakdown(ctx, companyID, collegeBreakdownLimit)
	if err != nil {
		return nil, err
	}
	skills, err := s.repo.SkillBreakdown(ctx, companyID, skillBreakdownLimit)
	if err != nil {
		return nil, err
	}
	salaries, err := s.repo.SalariesByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	interviews := byStatus["interview"]
	hired := byStatus["accepted"]

	report := &analytics.CompanyReport{
		Overview: analytics.CompanyOverview{
			TotalOpportunities:   len(posted),
			ActiveOpportunities:  active,
			PendingOpportunities: len(posted) - active,
			TotalApplications:    total,
			NewApplications:      lastDay,
			InterviewCount:       interviews,
			HiredCount:           hired,
			ConversionRate:       ratePercent(hired, total),
			InterviewToHireRate:  ratePercent(hired, interviews),
		},
		ApplicationsByStatus: byStatus,
		ApplicationsOverTime: daily,
		TopOpportunities:     top,
		CollegeDemographics:  colleges,
		SkillsAnalysis:       skills,
		AverageSalaryLakhs:   averageLakhs(salaries),
		WindowDays:           windowDays,
	}
	return report, nil
}

// StudentOverview summarizes the student's funnel and profile readiness.
func (s *AnalyticsService) StudentOverview(ctx context.Context, studentID common.UUID) (*analytics.StudentOverview, error) {
	activeTrue := true
	activeCount, err := s.repo.CountOpportunities(ctx, &activeTrue)
	if err != nil {
		return nil, err
	}
	totalApps, err := s.repo.CountStudentApplications(ctx, studentID, nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.repo.CountStudentApplications(ctx, studentID, []string{"applied", "under_review", "shortlisted"})
	if err != nil {
		return nil, err
	}
	interviews, err := s.repo.CountStudentApplications(ctx, studentID, []string{"interview"})
	if err != nil {
		return nil, err
	}

	completion := 0
	if prof, err := s.students.GetByUserID(ctx, studentID); err == nil {
		completion = prof.Completion
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	return &analytics.StudentOverview{
		ActiveOpportunities: activeCount,
		Applications:        totalApps,
		PendingApplications: pending,
		Interviews:          interviews,
		ProfileCompletion:   completion,
	}, nil
}

// AdminOverview aggregates platform-wide counts.
func (s *AnalyticsService) AdminOverview(ctx context.Context) (*analytics.AdminOverview, error) {
	studentTotal, err := s.users.CountByRole(ctx, user.RoleStudent)
	if err != nil {
		return nil, err
	}
	companyTotal, err := s.users.CountByRole(ctx, user.RoleCompany)
	if err != nil {
		return nil, err
	}
	totalOpps, err := s.repo.CountOpportunities(ctx, nil)
	if err != nil {
		return nil, err
	}
	activeTrue := true
	activeOpps, err := s.repo.CountOpportunities(ctx, &activeTrue)
	if err != nil {
		return nil, err
	}
	totalApps, err := s.repo.CountAllApplications(ctx)
	if err != nil {
		return nil, err
	}
	placed, err := s.repo.CountDistinctAcceptedStudents(ctx)
	if err != nil {
		return nil, err
	}
	salaries, err := s.repo.ActiveSalaries(ctx)
	if err != nil {
		return nil, err
	}

	return &analytics.AdminOverview{
		TotalStudents:        studentTotal,
		TotalCompanies:       companyTotal,
		TotalOpportunities:   totalOpps,
		ActiveOpportunities:  activeOpps,
		PendingOpportunities: totalOpps - activeOpps,
		TotalApplications:    totalApps,
		PlacedStudents:       placed,
		AveragePackageLakhs:  averageLakhs(salaries),
	}, nil
}

// ratePercent computes a rounded integer percentage, 0 on an empty
// denominator.
func ratePercent(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

var salaryNumberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// SalaryToLakhs normalizes a free-text salary string to lakhs per annum.
// Returns nil when no positive numeric token can be extracted, so
// unparseable entries drop out of averages instead of dragging them to zero.
func SalaryToLakhs(raw string) *float64 {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return nil
	}

	var values []float64
	for _, token := range salaryNumberPattern.FindAllString(text, -1) {
		v, err := strconv.ParseFloat(token, 64)
		if err != nil || v == 0 {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	amount := sum / float64(len(values))

	hasLPA := strings.Contains(text, "lpa") || strings.Contains(text, "lakh") || strings.Contains(text, "lac")
	hasThousand := strings.Contains(text, "k") || strings.Contains(text, "thousand")
	perMonth := strings.Contains(text, "per month") || strings.Contains(text, "/month") || strings.Contains(text, "monthly")

	switch {
	case perMonth && hasThousand:
		amount = amount * 12 / 100
	case perMonth:
		amount = amount * 12 / 100000
	case hasThousand && !hasLPA:
		amount = amount / 100
	}
	return &amount
}

// averageLakhs averages the parseable entries; nil when none parse.
func averageLakhs(raw []string) *float64 {
	sum := 0.0
	n := 0
	for _, entry := range raw {
		if v := SalaryToLakhs(entry); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(sum/float64(n)*100) / 100
	return &avg
}
