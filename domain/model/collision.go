package model

import (
	"fmt"
	"strings"
)

// CollisionPolicy decides what happens when a persisted table already exists.
type CollisionPolicy int

const (
	// CollisionError refuses to touch an existing table and reports ErrSchemaCollision
	CollisionError CollisionPolicy = iota
	// CollisionReplace drops the existing table and creates it again
	CollisionReplace
	// CollisionAppend inserts into the existing table without checking its columns
	CollisionAppend
)

// String returns the policy name
func (p CollisionPolicy) String() string {
	switch p {
	case CollisionReplace:
		return "replace"
	case CollisionAppend:
		return "append"
	default:
		return "error"
	}
}

// ParseCollisionPolicy maps "error", "replace" or "append" to a CollisionPolicy.
func ParseCollisionPolicy(name string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "error", "fail":
		return CollisionError, nil
	case "replace":
		return CollisionReplace, nil
	case "append":
		return CollisionAppend, nil
	default:
		return CollisionError, fmt.Errorf("unknown collision policy %q", name)
	}
}
