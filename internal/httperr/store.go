package httperr

import (
	"errors"

	"github.com/aws/smithy-go"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes we reclassify.
const (
	pgUniqueViolation       = "23505"
	pgForeignKeyViolation   = "23503"
	pgCheckViolation        = "23514"
	pgTooManyConnections    = "53300"
	pgConfigLimitExceeded   = "53400"
	pgInsufficientResources = "53000"
)

// FromStore wraps a database or object-storage failure into a typed error.
// entity prefixes the resulting code, e.g. "session" -> "session_not_found".
func FromStore(err error, entity string) error {
	if err == nil {
		return nil
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Error{Kind: KindNotFound, Code: entity + "_not_found", Message: "Not found.", Err: err}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Kind: KindConflict, Code: entity + "_conflict", Message: "Already exists.", Err: err}
		case pgForeignKeyViolation:
			return &Error{Kind: KindValidation, Code: entity + "_invalid_reference", Message: "Referenced record does not exist.", Err: err}
		case pgCheckViolation:
			return &Error{Kind: KindValidation, Code: entity + "_invalid", Message: "Invalid data.", Err: err}
		case pgTooManyConnections, pgConfigLimitExceeded, pgInsufficientResources:
			return &Error{Kind: KindRateLimited, Code: "too_many_requests", Message: "Too many attempts, try again later.", Err: err}
		}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "SlowDown", "TooManyRequests", "Throttling", "ThrottlingException", "RequestLimitExceeded":
			return &Error{Kind: KindRateLimited, Code: "too_many_requests", Message: "Too many attempts, try again later.", Err: err}
		case "NoSuchKey", "NotFound":
			return &Error{Kind: KindNotFound, Code: entity + "_not_found", Message: "Not found.", Err: err}
		}
	}

	return Internal(err, entity+"_store_failed")
}
