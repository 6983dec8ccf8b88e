package award

import (
	"errors"
	"fmt"
)

var (
	// ErrRateNotFound indicates the table has no entry for an employment type and level.
	ErrRateNotFound = errors.New("award rate not found")
	// ErrUnmappedCondition indicates hours were given for a condition the resolved rates do not cover.
	ErrUnmappedCondition = errors.New("pay condition has no rate")
	// ErrNegativeHours indicates an hours distribution contained a negative value.
	ErrNegativeHours = errors.New("hours must not be negative")
	// ErrMissingMultiplier indicates a rate table was built without a multiplier for every condition.
	ErrMissingMultiplier = errors.New("pay condition multiplier missing")
	// ErrUnknownAllowance indicates an allowance id is not in the catalog.
	ErrUnknownAllowance = errors.New("unknown allowance")
	// ErrInvalidTime indicates a time of day could not be parsed.
	ErrInvalidTime = errors.New("invalid time of day")
)

// RateNotFoundError carries the lookup that failed.
type RateNotFoundError struct {
	EmploymentType EmploymentType
	Level          Level
}

func (e *RateNotFoundError) Error() string {
	return fmt.Sprintf("no award rate for %s level %d", e.EmploymentType, e.Level)
}

// Is lets errors.Is(err, ErrRateNotFound) match.
func (e *RateNotFoundError) Is(target error) bool {
	return target == ErrRateNotFound
}
