// Package service exposes the task and subscription operations with a
// yes/no outcome. A false result means the request was rejected (invalid
// input, nothing to act on, or a conflicting state); the error return is
// reserved for storage failures.
package service

import (
	"github.com/runoshun/task-reminder/internal/domain"
)

// outcome maps a use case error onto the boolean contract.
func outcome(err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case domain.IsRejection(err):
		return false, nil
	default:
		return false, err
	}
}
