package progression

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Per-item domain errors. These are caught at the item boundary and reported
// in that item's result; they never abort the batch.
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrClassRoomNotFound    = errors.New("target classroom not found")
	ErrClassRoomMismatch    = errors.New("target classroom does not belong to the requested grade and academic year")
	ErrClassRoomInactive    = errors.New("target classroom is inactive")
	ErrClassRoomFull        = errors.New("target classroom is at capacity")
	ErrNoClassRoomAvailable = errors.New("no active classroom with spare capacity for the requested grade and academic year")
	ErrCapacityNotSet       = errors.New("classroom has no capacity configured")
)

// ValidationError rejects a whole batch before any item is processed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid progression batch: " + strings.Join(parts, "; ")
}
