package config

import (
	"fmt"
	"time"
)

// ValidateDurationRange checks that d lies in [min, max]. Used for
// request timeouts where both a zero value and an unbounded value would
// break the run.
func ValidateDurationRange(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if d < min {
		return fmt.Errorf("duration %v is below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v exceeds maximum %v", d, max)
	}
	return nil
}
