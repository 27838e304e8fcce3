package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Project errors
	CodeProjectNotFound      Code = "PROJECT_NOT_FOUND"
	CodeProjectNameTaken     Code = "PROJECT_NAME_TAKEN"
	CodeProjectWindowOverlap Code = "PROJECT_WINDOW_OVERLAP"
	CodeProjectNotVisible    Code = "PROJECT_NOT_VISIBLE"
	CodeManagerNotFound      Code = "MANAGER_NOT_FOUND"

	// Application errors
	CodeApplicantNotFound   Code = "APPLICANT_NOT_FOUND"
	CodeNotAnApplicant      Code = "NOT_AN_APPLICANT"
	CodeAlreadyApplied      Code = "ALREADY_APPLIED"
	CodeNotEligible         Code = "NOT_ELIGIBLE"
	CodeNoUnitsAvailable    Code = "NO_UNITS_AVAILABLE"
	CodeNoActiveApplication Code = "NO_ACTIVE_APPLICATION"
	CodeNotYetApproved      Code = "NOT_YET_APPROVED"
	CodeAlreadyBooked       Code = "ALREADY_BOOKED"
	CodeOfficerNotAssigned  Code = "OFFICER_NOT_ASSIGNED"

	// Withdrawal errors
	CodeNoPendingApplication Code = "NO_PENDING_APPLICATION"
	CodeWithdrawalInProgress Code = "WITHDRAWAL_IN_PROGRESS"

	// Registration errors
	CodeOfficerNotFound           Code = "OFFICER_NOT_FOUND"
	CodeRegistrationWindowOverlap Code = "REGISTRATION_WINDOW_OVERLAP"
	CodeAlreadyRegistered         Code = "ALREADY_REGISTERED"
	CodeApplicantOnProject        Code = "APPLICANT_ON_PROJECT"
	CodeNoOfficerSlots            Code = "NO_OFFICER_SLOTS"

	// Request/enquiry errors
	CodeRequestNotFound         Code = "REQUEST_NOT_FOUND"
	CodeRequestWrongType        Code = "REQUEST_WRONG_TYPE"
	CodeEnquiryAlreadyProcessed Code = "ENQUIRY_ALREADY_PROCESSED"
	CodeEnquiryNotOwned         Code = "ENQUIRY_NOT_OWNED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeRequestWrongType:
		return codes.InvalidArgument

	// NotFound - resource doesn't exist
	case CodeProjectNotFound,
		CodeManagerNotFound,
		CodeApplicantNotFound,
		CodeNotAnApplicant,
		CodeOfficerNotFound,
		CodeRequestNotFound:
		return codes.NotFound

	// AlreadyExists - uniqueness conflicts
	case CodeProjectNameTaken,
		CodeAlreadyRegistered:
		return codes.AlreadyExists

	// FailedPrecondition - state doesn't allow operation
	case CodeProjectWindowOverlap,
		CodeProjectNotVisible,
		CodeAlreadyApplied,
		CodeNotEligible,
		CodeNoActiveApplication,
		CodeNotYetApproved,
		CodeAlreadyBooked,
		CodeOfficerNotAssigned,
		CodeNoPendingApplication,
		CodeWithdrawalInProgress,
		CodeRegistrationWindowOverlap,
		CodeApplicantOnProject,
		CodeEnquiryAlreadyProcessed:
		return codes.FailedPrecondition

	// PermissionDenied - actor does not own the resource
	case CodeEnquiryNotOwned:
		return codes.PermissionDenied

	// ResourceExhausted - counters ran out
	case CodeNoUnitsAvailable,
		CodeNoOfficerSlots:
		return codes.ResourceExhausted

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes via their gRPC code.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.FailedPrecondition:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.ResourceExhausted:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
