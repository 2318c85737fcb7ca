package models

import "errors"

// Model validation and operation errors
var (
	// General errors
	ErrNotFound                = errors.New("resource not found")
	ErrAlreadyExists           = errors.New("resource already exists")
	ErrInvalidInput            = errors.New("invalid input")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// Company errors
	ErrCompanyNotFound = errors.New("company not found")
	ErrCompanyDeleted  = errors.New("company has been deleted")
	ErrInvalidSector   = errors.New("invalid sector")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUserDeleted        = errors.New("user has been deleted")
	ErrUserInactive       = errors.New("user is inactive")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidUserRole    = errors.New("invalid user role")

	// Domain errors
	ErrDomainNotFound = errors.New("domain not found")
	ErrDomainInactive = errors.New("domain is inactive")

	// Question errors
	ErrQuestionNotFound      = errors.New("question not found")
	ErrQuestionInactive      = errors.New("question is inactive")
	ErrInvalidMaturityLevel  = errors.New("invalid maturity level")
	ErrQuestionOutsidePlan   = errors.New("question is outside the assessment plan level")
	ErrQuestionDomainMissing = errors.New("question references a missing domain")

	// Assessment errors
	ErrAssessmentNotFound         = errors.New("assessment not found")
	ErrAssessmentAlreadyCompleted = errors.New("assessment has already been completed")
	ErrAssessmentNotDraft         = errors.New("assessment is not in draft status")

	// Response errors
	ErrResponseNotFound     = errors.New("response not found")
	ErrInvalidResponseValue = errors.New("response value must be between 1 and 5")
)

// IsNotFoundError returns true if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrDomainNotFound) ||
		errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrAssessmentNotFound) ||
		errors.Is(err, ErrResponseNotFound)
}

// IsValidationError returns true if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrInvalidStatusTransition) ||
		errors.Is(err, ErrInvalidSector) ||
		errors.Is(err, ErrInvalidUserRole) ||
		errors.Is(err, ErrInvalidMaturityLevel) ||
		errors.Is(err, ErrInvalidResponseValue) ||
		errors.Is(err, ErrQuestionOutsidePlan)
}

// IsConflictError returns true if the error is a conflict/state error
func IsConflictError(err error) bool {
	return errors.Is(err, ErrAlreadyExists) ||
		errors.Is(err, ErrEmailAlreadyExists) ||
		errors.Is(err, ErrAssessmentAlreadyCompleted) ||
		errors.Is(err, ErrAssessmentNotDraft)
}

// IsAuthError returns true if the error is an authentication/authorization error
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrUserInactive) ||
		errors.Is(err, ErrUserDeleted)
}
