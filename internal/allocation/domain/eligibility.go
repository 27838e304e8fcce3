package domain

import "time"

// Eligibility computes the highest flat type the applicant may apply for on
// the project as of today, or the empty FlatType when ineligible.
//
// The project must be visible, must not already have the applicant assigned
// as an officer, and today must fall strictly inside its application window.
// Married applicants aged 21 and above qualify up to three-room (which also
// covers two-room); single applicants aged 35 and above qualify for two-room
// only. Pure function, no side effects.
func Eligibility(applicant *Applicant, project *Project, today time.Time) FlatType {
	if applicant == nil || project == nil {
		return ""
	}
	if !project.Visible {
		return ""
	}
	if project.HasOfficer(applicant.UserID) {
		return ""
	}
	if !project.OpenDate.Before(today) || !project.CloseDate.After(today) {
		return ""
	}

	switch {
	case applicant.Age >= 21 && applicant.MaritalStatus == MaritalMarried:
		return FlatTypeThreeRoom
	case applicant.Age >= 35 && applicant.MaritalStatus == MaritalSingle:
		return FlatTypeTwoRoom
	}
	return ""
}

// covers reports whether an eligibility grade permits applying for the
// requested flat type. Three-room eligibility covers two-room.
func covers(eligible, requested FlatType) bool {
	switch eligible {
	case FlatTypeThreeRoom:
		return requested == FlatTypeTwoRoom || requested == FlatTypeThreeRoom
	case FlatTypeTwoRoom:
		return requested == FlatTypeTwoRoom
	}
	return false
}
