package config

import (
	"fmt"
	"time"
)

// ValidateIntRange checks that value lies in [min, max] inclusive.
func ValidateIntRange(value, min, max int) error {
	if value < min || value > max {
		return fmt.Errorf("value %d out of range [%d, %d]", value, min, max)
	}
	return nil
}

// ValidatePositiveDuration checks that d is strictly positive.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration %v must be positive", d)
	}
	return nil
}

// ValidateDuration checks that d lies in [min, max] inclusive.
func ValidateDuration(d, min, max time.Duration) error {
	if d < min || d > max {
		return fmt.Errorf("duration %v out of range [%v, %v]", d, min, max)
	}
	return nil
}
