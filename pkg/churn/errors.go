package churn

import "errors"

var (
	// ErrBadConfig indicates a Config that cannot be run.
	ErrBadConfig = errors.New("churn: bad config")

	// ErrExhausted indicates an allocation that reported no block mid-churn.
	ErrExhausted = errors.New("churn: allocation reported no block")

	// ErrDrift indicates the issued-block count changed across the run.
	ErrDrift = errors.New("churn: issued count drifted")
)
