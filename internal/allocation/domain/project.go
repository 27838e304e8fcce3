package domain

import (
	"time"

	apperrors "github.com/kaijietay/btoflow/internal/platform/errors"
)

// Project is one housing project: its unit inventory per flat type, its
// application window, and the officers and booked applicants attached to it.
type Project struct {
	ID            string
	Name          string
	Neighborhoods []string
	// Units is the remaining available unit count per flat type.
	Units map[FlatType]int
	// Prices is the integer price per flat type.
	Prices    map[FlatType]int
	OpenDate  time.Time
	CloseDate time.Time
	// ManagerID is the owning manager, set at creation and never edited.
	ManagerID string
	// OfficerSlots is the remaining number of officer assignments.
	OfficerSlots int
	// OfficerIDs are the officers assigned to service this project.
	OfficerIDs []string
	// BookedApplicantIDs are applicants holding a booked unit.
	BookedApplicantIDs []string
	Visible            bool
}

// UnitsFor returns the remaining unit count for a flat type.
func (p Project) UnitsFor(flat FlatType) int {
	return p.Units[flat]
}

// PriceFor returns the price for a flat type.
func (p Project) PriceFor(flat FlatType) int {
	return p.Prices[flat]
}

// HasOfficer reports whether the user is assigned to this project.
func (p Project) HasOfficer(userID string) bool {
	for _, id := range p.OfficerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasBookedApplicant reports whether the applicant holds a booked unit here.
func (p Project) HasBookedApplicant(userID string) bool {
	for _, id := range p.BookedApplicantIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// WindowOverlaps reports whether two application windows intersect, treating
// both interval ends as inclusive.
func (p Project) WindowOverlaps(open, close time.Time) bool {
	return !(p.CloseDate.Before(open) || close.Before(p.OpenDate))
}

// consumeUnit decrements the available unit count for a flat type. It is the
// only way inventory decreases; the count never goes below zero.
func (p *Project) consumeUnit(flat FlatType) error {
	if p.Units[flat] <= 0 {
		return apperrors.WithMetadata(apperrors.CodeNoUnitsAvailable,
			"no available units of flat type "+string(flat),
			map[string]string{"project_id": p.ID, "flat_type": string(flat)})
	}
	p.Units[flat]--
	return nil
}

// releaseUnit returns one unit of a flat type to the available pool.
func (p *Project) releaseUnit(flat FlatType) {
	if p.Units == nil {
		p.Units = make(map[FlatType]int)
	}
	p.Units[flat]++
}

// assignOfficer attaches an officer, consuming one officer slot. Assigning an
// already-assigned officer is a no-op so decision replays cannot double-count.
func (p *Project) assignOfficer(userID string) error {
	if p.HasOfficer(userID) {
		return nil
	}
	if p.OfficerSlots <= 0 {
		return apperrors.WithMetadata(apperrors.CodeNoOfficerSlots,
			"no officer slots remaining",
			map[string]string{"project_id": p.ID})
	}
	p.OfficerIDs = append(p.OfficerIDs, userID)
	p.OfficerSlots--
	return nil
}

// unassignOfficer detaches an officer and returns their slot. Detaching a
// non-assigned officer is a no-op.
func (p *Project) unassignOfficer(userID string) {
	if !p.HasOfficer(userID) {
		return
	}
	p.OfficerIDs = removeString(p.OfficerIDs, userID)
	p.OfficerSlots++
}

func (p *Project) addBookedApplicant(userID string) {
	if !p.HasBookedApplicant(userID) {
		p.BookedApplicantIDs = append(p.BookedApplicantIDs, userID)
	}
}

func (p *Project) removeBookedApplicant(userID string) {
	p.BookedApplicantIDs = removeString(p.BookedApplicantIDs, userID)
}
