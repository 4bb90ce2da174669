package models

import "errors"

// Stage errors. Each wraps the underlying failure so callers can match the
// stage with errors.Is and still reach the cause.
var (
	ErrExtraction     = errors.New("data extraction failed")
	ErrTransformation = errors.New("data transformation failed")
	ErrLoad           = errors.New("data loading failed")
	ErrGeneration     = errors.New("strategy generation failed")
	ErrExecution      = errors.New("strategy execution failed")
	ErrMonitoring     = errors.New("strategy monitoring failed")
)

// Custom errors
var (
	ErrMissingField          = errors.New("required field missing")
	ErrConfidenceOutOfRange  = errors.New("confidence score out of bounds")
	ErrRecommendationMissing = errors.New("strategy recommendation is required")
	ErrNotFound              = errors.New("record not found")
)
