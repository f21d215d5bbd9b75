package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every ValidationError via errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmptyInput is returned by operations that need at least one point.
var ErrEmptyInput = errors.New("geom: empty input")

// ValidationError reports a rejected input parameter. Generators return it
// before doing any work, so a failed call never yields partial output.
type ValidationError struct {
	Param  string // offending parameter name, e.g. "iterations"
	Value  any    // the rejected value
	Reason string // human-readable constraint, e.g. "must be <= 4"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Invalid builds a *ValidationError.
func Invalid(param string, value any, reason string) error {
	return &ValidationError{Param: param, Value: value, Reason: reason}
}

// ---------------------------------------------------------------------------
// Shared validators
// ---------------------------------------------------------------------------

// CheckPoint rejects non-finite points.
func CheckPoint(param string, p Point) error {
	if !p.IsFinite() {
		return Invalid(param, p, "must have finite coordinates")
	}
	return nil
}

// CheckPositive rejects values that are not strictly positive and finite.
func CheckPositive(param string, v float64) error {
	if !(v > 0) || math.IsInf(v, 1) {
		return Invalid(param, v, "must be > 0")
	}
	return nil
}

// CheckRange rejects n outside [lo, hi].
func CheckRange(param string, n, lo, hi int) error {
	if n < lo {
		return Invalid(param, n, fmt.Sprintf("must be >= %d", lo))
	}
	if n > hi {
		return Invalid(param, n, fmt.Sprintf("must be <= %d", hi))
	}
	return nil
}

// CheckMin rejects n below lo.
func CheckMin(param string, n, lo int) error {
	if n < lo {
		return Invalid(param, n, fmt.Sprintf("must be >= %d", lo))
	}
	return nil
}

// CheckOpenUnit rejects v outside the open interval (0, 1).
func CheckOpenUnit(param string, v float64) error {
	if !(v > 0 && v < 1) {
		return Invalid(param, v, "must be strictly between 0 and 1")
	}
	return nil
}

// FirstError returns the first non-nil error, letting generators list their
// checks in parameter order.
func FirstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
