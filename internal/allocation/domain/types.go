package domain

import "time"

// FlatType identifies a bookable unit category within a project.
type FlatType string

const (
	// FlatTypeTwoRoom is a two-room flat.
	FlatTypeTwoRoom FlatType = "TWO_ROOM"
	// FlatTypeThreeRoom is a three-room flat.
	FlatTypeThreeRoom FlatType = "THREE_ROOM"
)

// FlatTypes lists every flat type in display order.
func FlatTypes() []FlatType {
	return []FlatType{FlatTypeTwoRoom, FlatTypeThreeRoom}
}

// Valid reports whether the flat type is a known unit category.
func (f FlatType) Valid() bool {
	return f == FlatTypeTwoRoom || f == FlatTypeThreeRoom
}

// MaritalStatus is an applicant's marital status, one input to eligibility.
type MaritalStatus string

const (
	// MaritalSingle marks an unmarried applicant.
	MaritalSingle MaritalStatus = "SINGLE"
	// MaritalMarried marks a married applicant.
	MaritalMarried MaritalStatus = "MARRIED"
)

// ApplicationStatus is the cached state of an applicant's application to one
// project.
type ApplicationStatus string

const (
	// ApplicationPending means the application awaits a manager decision.
	ApplicationPending ApplicationStatus = "PENDING"
	// ApplicationSuccessful means the application was approved and a flat
	// can be booked.
	ApplicationSuccessful ApplicationStatus = "SUCCESSFUL"
	// ApplicationUnsuccessful is terminal; the applicant is free to apply
	// elsewhere.
	ApplicationUnsuccessful ApplicationStatus = "UNSUCCESSFUL"
	// ApplicationBooked means a unit was consumed for this applicant.
	ApplicationBooked ApplicationStatus = "BOOKED"
	// ApplicationWithdrawn marks an application the applicant asked to
	// withdraw. The pending withdrawal request decides its final outcome.
	ApplicationWithdrawn ApplicationStatus = "WITHDRAWN"
)

// RegistrationStatus is the cached state of an officer's registration to
// service one project.
type RegistrationStatus string

const (
	// RegistrationPending means the registration awaits a manager decision.
	RegistrationPending RegistrationStatus = "PENDING"
	// RegistrationApproved means the officer was approved and assigned to
	// the project.
	RegistrationApproved RegistrationStatus = "APPROVED"
	// RegistrationApprovedUnassigned means the registration was approved
	// after the project ran out of officer slots, so the officer was never
	// assigned. Kept distinct so the inconsistency stays queryable.
	RegistrationApprovedUnassigned RegistrationStatus = "APPROVED_UNASSIGNED"
	// RegistrationRejected is terminal.
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// RequestType identifies the workflow a request record belongs to.
type RequestType string

const (
	// RequestTypeApplication is a BTO flat application.
	RequestTypeApplication RequestType = "BTO_APPLICATION"
	// RequestTypeWithdrawal asks to withdraw a BTO application.
	RequestTypeWithdrawal RequestType = "BTO_WITHDRAWAL"
	// RequestTypeRegistration is an officer project registration.
	RequestTypeRegistration RequestType = "REGISTRATION"
	// RequestTypeEnquiry is a free-text question about a project.
	RequestTypeEnquiry RequestType = "ENQUIRY"
)

// RequestState says whether a request has been finally processed.
type RequestState string

const (
	// RequestPending means the request awaits processing.
	RequestPending RequestState = "PENDING"
	// RequestDone means the request was finally processed.
	RequestDone RequestState = "DONE"
)

// ApprovedStatus is the approval outcome on a decision-requiring request.
type ApprovedStatus string

const (
	// ApprovalPending means no decision has been made yet.
	ApprovalPending ApprovedStatus = "PENDING"
	// ApprovalSuccessful approves the request.
	ApprovalSuccessful ApprovedStatus = "SUCCESSFUL"
	// ApprovalUnsuccessful rejects the request.
	ApprovalUnsuccessful ApprovedStatus = "UNSUCCESSFUL"
)

// Valid reports whether the value is a known approval outcome.
func (a ApprovedStatus) Valid() bool {
	switch a {
	case ApprovalPending, ApprovalSuccessful, ApprovalUnsuccessful:
		return true
	}
	return false
}

// Request is the durable audit record of one workflow submission. Application,
// withdrawal, and registration requests carry an approval outcome; enquiries
// carry a query and, once answered, an answer.
type Request struct {
	ID        string
	Type      RequestType
	UserID    string
	ProjectID string
	State     RequestState
	Approval  ApprovedStatus
	FlatType  FlatType // requested flat, application requests only
	Query     string   // enquiry text
	Answer    string   // enquiry answer, empty until answered
	CreatedAt time.Time
}

// Applicant is a user profile seeking to apply for and book a housing unit.
// Officer and Manager capabilities reference the same user ID.
type Applicant struct {
	UserID        string
	Name          string
	Age           int
	MaritalStatus MaritalStatus

	// ActiveProjectID is the single project currently applied to or booked;
	// empty when the applicant holds no active application.
	ActiveProjectID string
	// Statuses records the application outcome per project, append-only by
	// key overwrite.
	Statuses map[string]ApplicationStatus
	// AppliedFlats records the flat type requested per project.
	AppliedFlats map[string]FlatType
}

// StatusFor returns the applicant's application status for a project, or the
// empty string when none was ever recorded.
func (a Applicant) StatusFor(projectID string) ApplicationStatus {
	return a.Statuses[projectID]
}

func (a *Applicant) setStatus(projectID string, status ApplicationStatus) {
	if a.Statuses == nil {
		a.Statuses = make(map[string]ApplicationStatus)
	}
	a.Statuses[projectID] = status
}

func (a *Applicant) setAppliedFlat(projectID string, flat FlatType) {
	if a.AppliedFlats == nil {
		a.AppliedFlats = make(map[string]FlatType)
	}
	a.AppliedFlats[projectID] = flat
}

func (a *Applicant) clearAppliedFlat(projectID string) {
	delete(a.AppliedFlats, projectID)
}

// Officer is the project-servicing capability of a user. It references the
// Applicant profile with the same user ID rather than extending it.
type Officer struct {
	UserID string

	// RegisteredProjectIDs holds projects the officer is assigned to
	// (approved with an officer slot).
	RegisteredProjectIDs []string
	// Statuses records the registration outcome per project.
	Statuses map[string]RegistrationStatus
}

// StatusFor returns the officer's registration status for a project, or the
// empty string when none was ever recorded.
func (o Officer) StatusFor(projectID string) RegistrationStatus {
	return o.Statuses[projectID]
}

// AssignedTo reports whether the officer is assigned to the project.
func (o Officer) AssignedTo(projectID string) bool {
	for _, id := range o.RegisteredProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

func (o *Officer) setStatus(projectID string, status RegistrationStatus) {
	if o.Statuses == nil {
		o.Statuses = make(map[string]RegistrationStatus)
	}
	o.Statuses[projectID] = status
}

func (o *Officer) addRegisteredProject(projectID string) {
	if !o.AssignedTo(projectID) {
		o.RegisteredProjectIDs = append(o.RegisteredProjectIDs, projectID)
	}
}

func (o *Officer) removeRegisteredProject(projectID string) {
	o.RegisteredProjectIDs = removeString(o.RegisteredProjectIDs, projectID)
}

// Manager is the project-owning capability of a user.
type Manager struct {
	UserID     string
	Name       string
	ProjectIDs []string
}

func (m *Manager) addProject(projectID string) {
	for _, id := range m.ProjectIDs {
		if id == projectID {
			return
		}
	}
	m.ProjectIDs = append(m.ProjectIDs, projectID)
}

func (m *Manager) removeProject(projectID string) {
	m.ProjectIDs = removeString(m.ProjectIDs, projectID)
}

func removeString(list []string, value string) []string {
	out := list[:0]
	for _, v := range list {
		if v != value {
			out = append(out, v)
		}
	}
	return out
}
