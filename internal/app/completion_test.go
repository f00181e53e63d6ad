package app

import (
	"testing"

	"campushire/internal/domain/profile"
)

func TestStudentProfileCompletion(t *testing.T) {
	empty := profile.StudentProfile{}
	if got := StudentProfileCompletion(empty); got != 0 {
		t.Fatalf("empty profile completion = %d, want 0", got)
	}

	full := profile.StudentProfile{
		College:        "NIT Trichy",
		Course:         "B.Tech",
		GraduationYear: iptr(2026),
		CGPA:           fptr(8.1),
		Phone:          "9999999999",
		Skills:         []string{"Go"},
		Resume:         "resume.pdf",
	}
	if got := StudentProfileCompletion(full); got != 100 {
		t.Fatalf("full profile completion = %d, want 100", got)
	}

	// 3 of 7 fields, rounded.
	partial := profile.StudentProfile{
		College: "NIT Trichy",
		Course:  "B.Tech",
		Phone:   "9999999999",
	}
	if got := StudentProfileCompletion(partial); got != 43 {
		t.Fatalf("partial profile completion = %d, want 43", got)
	}
}

func TestStudentProfileCompletionMonotonic(t *testing.T) {
	p := profile.StudentProfile{}
	last := StudentProfileCompletion(p)
	steps := []func(){
		func() { p.College = "IIT Delhi" },
		func() { p.Course = "B.Tech" },
		func() { p.GraduationYear = iptr(2025) },
		func() { p.CGPA = fptr(9.0) },
		func() { p.Phone = "8888888888" },
		func() { p.Skills = []string{"Python"} },
		func() { p.Resume = "cv.pdf" },
	}
	for i, step := range steps {
		step()
		got := StudentProfileCompletion(p)
		if got <= last {
			t.Fatalf("step %d: completion %d did not increase from %d", i, got, last)
		}
		if got < 0 || got > 100 {
			t.Fatalf("step %d: completion %d out of range", i, got)
		}
		last = got
	}
}

func TestIsCompanyProfileComplete(t *testing.T) {
	if IsCompanyProfileComplete(profile.CompanyProfile{CompanyName: "Acme", Industry: "Software"}) {
		t.Fatal("profile without contact person reported complete")
	}
	complete := profile.CompanyProfile{CompanyName: "Acme", Industry: "Software", ContactPerson: "Priya"}
	if !IsCompanyProfileComplete(complete) {
		t.Fatal("complete profile reported incomplete")
	}
}
