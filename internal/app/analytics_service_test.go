package app

import (
	"math"
	"testing"
)

func TestSalaryToLakhs(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"8 LPA", 8.0},
		{"6-10 LPA", 8.0},
		{"5 lakh per annum", 5.0},
		{"80k per month", 9.6},
		{"800k", 8.0},
		{"₹50,000/month", 0.006},
		{"12", 12.0},
	}
	for _, tt := range tests {
		got := SalaryToLakhs(tt.raw)
		if got == nil {
			t.Fatalf("SalaryToLakhs(%q) = nil, want %v", tt.raw, tt.want)
		}
		if math.Abs(*got-tt.want) > 1e-9 {
			t.Fatalf("SalaryToLakhs(%q) = %v, want %v", tt.raw, *got, tt.want)
		}
	}
}

func TestSalaryToLakhsUnparseable(t *testing.T) {
	for _, raw := range []string{"", "Competitive", "as per industry standards"} {
		if got := SalaryToLakhs(raw); got != nil {
			t.Fatalf("SalaryToLakhs(%q) = %v, want nil", raw, *got)
		}
	}
}

func TestAverageLakhsSkipsUnparseable(t *testing.T) {
	avg := averageLakhs([]string{"8 LPA", "Competitive", "12 LPA"})
	if avg == nil {
		t.Fatal("averageLakhs returned nil")
	}
	if *avg != 10.0 {
		t.Fatalf("averageLakhs = %v, want 10.0", *avg)
	}

	if got := averageLakhs([]string{"Competitive", "negotiable"}); got != nil {
		t.Fatalf("averageLakhs of unparseable entries = %v, want nil", *got)
	}
}

func TestRatePercent(t *testing.T) {
	if got := ratePercent(5, 0); got != 0 {
		t.Fatalf("ratePercent(5, 0) = %d, want 0", got)
	}
	if got := ratePercent(1, 3); got != 33 {
		t.Fatalf("ratePercent(1, 3) = %d, want 33", got)
	}
	if got := ratePercent(2, 3); got != 67 {
		t.Fatalf("ratePercent(2, 3) = %d, want 67", got)
	}
	if got := ratePercent(3, 3); got != 100 {
		t.Fatalf("ratePercent(3, 3) = %d, want 100", got)
	}
}
