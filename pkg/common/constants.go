package common

import "time"

const (
	// DetectionCacheTTL bounds how long identical text keeps its cached
	// detection outcome.
	DetectionCacheTTL = 5 * time.Minute

	DetectionTTLName = "detection"
)
