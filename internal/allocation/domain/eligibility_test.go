package domain

import (
	"testing"
	"time"
)

func TestEligibility(t *testing.T) {
	project := openProject("p1")
	today := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		applicant Applicant
		mutate    func(*Project)
		want      FlatType
	}{
		{
			name:      "married at 21 qualifies for three-room",
			applicant: Applicant{UserID: "u1", Age: 21, MaritalStatus: MaritalMarried},
			want:      FlatTypeThreeRoom,
		},
		{
			name:      "married under 21 is ineligible",
			applicant: Applicant{UserID: "u1", Age: 20, MaritalStatus: MaritalMarried},
			want:      "",
		},
		{
			name:      "single at 35 qualifies for two-room",
			applicant: Applicant{UserID: "u1", Age: 35, MaritalStatus: MaritalSingle},
			want:      FlatTypeTwoRoom,
		},
		{
			name:      "single under 35 is ineligible",
			applicant: Applicant{UserID: "u1", Age: 34, MaritalStatus: MaritalSingle},
			want:      "",
		},
		{
			name:      "hidden project is ineligible",
			applicant: Applicant{UserID: "u1", Age: 30, MaritalStatus: MaritalMarried},
			mutate:    func(p *Project) { p.Visible = false },
			want:      "",
		},
		{
			name:      "assigned officer cannot apply",
			applicant: Applicant{UserID: "u1", Age: 30, MaritalStatus: MaritalMarried},
			mutate:    func(p *Project) { p.OfficerIDs = []string{"u1"} },
			want:      "",
		},
		{
			name:      "window not yet open",
			applicant: Applicant{UserID: "u1", Age: 30, MaritalStatus: MaritalMarried},
			mutate:    func(p *Project) { p.OpenDate = testNow.AddDate(0, 0, 1) },
			want:      "",
		},
		{
			name:      "opening today is still closed, the interval is strict",
			applicant: Applicant{UserID: "u1", Age: 30, MaritalStatus: MaritalMarried},
			mutate: func(p *Project) {
				p.OpenDate = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
			},
			want: "",
		},
		{
			name:      "window already closed",
			applicant: Applicant{UserID: "u1", Age: 30, MaritalStatus: MaritalMarried},
			mutate:    func(p *Project) { p.CloseDate = testNow.AddDate(0, 0, -1) },
			want:      "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := cloneProject(project)
			if tc.mutate != nil {
				tc.mutate(&p)
			}
			a := tc.applicant
			if got := Eligibility(&a, &p, today); got != tc.want {
				t.Fatalf("Eligibility() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestEligibilityNilInputs(t *testing.T) {
	p := openProject("p1")
	a := marriedApplicant("u1")
	if got := Eligibility(nil, &p, testNow); got != "" {
		t.Fatalf("nil applicant: got %q", got)
	}
	if got := Eligibility(&a, nil, testNow); got != "" {
		t.Fatalf("nil project: got %q", got)
	}
}

func TestCovers(t *testing.T) {
	tests := []struct {
		eligible, requested FlatType
		want                bool
	}{
		{FlatTypeThreeRoom, FlatTypeThreeRoom, true},
		{FlatTypeThreeRoom, FlatTypeTwoRoom, true},
		{FlatTypeTwoRoom, FlatTypeTwoRoom, true},
		{FlatTypeTwoRoom, FlatTypeThreeRoom, false},
		{"", FlatTypeTwoRoom, false},
	}
	for _, tc := range tests {
		if got := covers(tc.eligible, tc.requested); got != tc.want {
			t.Errorf("covers(%q, %q) = %v, want %v", tc.eligible, tc.requested, got, tc.want)
		}
	}
}
