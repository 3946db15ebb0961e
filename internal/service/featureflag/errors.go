package featureflag

import "errors"

// Sentinel errors for the feature flag repository contract.
var (
	ErrNotFound  = errors.New("feature flag not found")
	ErrNameTaken = errors.New("feature flag name already exists")
)
