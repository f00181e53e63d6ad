package app

import "campushire/internal/domain/profile"

// completionFieldCount is the size of the canonical field list below. The
// percentage is the unweighted share of populated fields, rounded.
const completionFieldCount = 7

// StudentProfileCompletion recomputes the completion percentage from the
// canonical field list: college, course, graduation year, cgpa, phone,
// skills, resume.
func StudentProfileCompletion(p profile.StudentProfile) int {
	completed := 0
	if p.College != "" {
		completed++
	}
	if p.Course != "" {
		completed++
	}
	if p.GraduationYear != nil {
		completed++
	}
	if p.CGPA != nil {
		completed++
	}
	if p.Phone != "" {
		completed++
	}
	if len(p.Skills) > 0 {
		completed++
	}
	if p.Resume != "" {
		completed++
	}
	return (completed*100 + completionFieldCount/2) / completionFieldCount
}

// IsCompanyProfileComplete gates posting activation requests: a company must
// identify itself before its openings go in front of students.
func IsCompanyProfileComplete(p profile.CompanyProfile) bool {
	return p.CompanyName != "" && p.Industry != "" && p.ContactPerson != ""
}
