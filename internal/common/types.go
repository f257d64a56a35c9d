package common

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("record not found")

// ValidID reports whether id has the canonical 36 character UUID form. Ids that
// fail this check are treated as not found without touching the store.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// TrimAll trims surrounding whitespace from every pointed-to string.
func TrimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders as an ISO-8601 UTC string with millisecond precision.
// It is set once when a record is created and never changes afterwards.
type Timestamp struct {
	time.Time
}

// Now returns the current time at the precision the store keeps.
func Now() Timestamp {
	return Timestamp{time.Now().UTC().Truncate(time.Millisecond)}
}

func (t Timestamp) String() string {
	return t.UTC().Format(timestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}
