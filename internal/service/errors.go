package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrInvalidGrade       = errors.New("invalid review grade")
	ErrEntityDeleted      = errors.New("entity is deleted")
	ErrUnknownEntityType  = errors.New("unknown entity type")
	ErrConflictOperation  = errors.New("conflict resolution does not apply")
	ErrSyncSkippedMetered = errors.New("sync skipped on metered network")
)
