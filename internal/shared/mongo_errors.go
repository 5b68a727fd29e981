// Package shared provides common utilities used across the codebase.
//
//nolint:revive // "shared" is an intentional package name for cross-cutting helpers.
package shared

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// IsDuplicateKeyError checks if the error is a MongoDB duplicate key
// error (E11000). This occurs when an insert or upsert violates a
// unique index, typically when two requests race to create the same
// per-user record.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsDuplicateKeyError(err)
}

// IsTimeoutError checks if the error is a MongoDB timeout, either from
// the driver or from a server-side exceeded time limit.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	return mongo.IsTimeout(err)
}
