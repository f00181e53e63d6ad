package app

import (
	"strings"

	"campushire/internal/domain/opportunity"
	"campushire/internal/domain/profile"
)

// EvaluateEligibility compares a student snapshot against a posting's declared
// thresholds. Every declared threshold must pass. The missing-data policy is
// asymmetric and deliberate: numeric thresholds fail closed (a student with no
// recorded score fails any positive minimum), categorical thresholds fail open
// (a missing graduation year or branch on either side does not block).
func EvaluateEligibility(e opportunity.Eligibility, p profile.StudentProfile) bool {
	if e.MinCGPA != nil && floatOrZero(p.CGPA) < *e.MinCGPA {
		return false
	}
	if e.MinTenthPercent != nil && floatOrZero(p.TenthPercent) < *e.MinTenthPercent {
		return false
	}
	if e.MinTwelfthPercent != nil && floatOrZero(p.TwelfthPercent) < *e.MinTwelfthPercent {
		return false
	}
	if e.RequiredGraduationYear != nil && p.GraduationYear != nil && *p.GraduationYear != *e.RequiredGraduationYear {
		return false
	}
	if len(e.AllowedBranches) > 0 && p.Branch != "" && !containsFold(e.AllowedBranches, p.Branch) {
		return false
	}
	return true
}

func floatOrZero(value *float64) float64 {
	if value == nil {
		return 0
	}
	return *value
}

func containsFold(values []string, target string) bool {
	for _, value := range values {
		if strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(target)) {
			return true
		}
	}
	return false
}
