package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound indicates the row does not exist or is not visible to the caller.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness conflict.
var ErrDuplicate = errors.New("record already exists")

const uniqueViolation = pq.ErrorCode("23505")

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
