// ocimcp - Model Context Protocol server for Oracle Cloud Infrastructure
// License: MIT
//
// Copyright (c) 2026 ocimcp contributors

package backend

import (
	"errors"
	"fmt"
)

// ServiceError is a failure reported by the provider. StatusCode carries the
// HTTP status when the provider surfaced one; Code carries the provider's
// symbolic error code (e.g. NotAuthorizedOrNotFound, LimitExceeded).
type ServiceError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	switch {
	case e.StatusCode > 0:
		return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Message)
	case e.Code != "":
		return fmt.Sprintf("service error (%s): %s", e.Code, e.Message)
	default:
		return fmt.Sprintf("service error: %s", e.Message)
	}
}

// Classify converts any failure raised by the provider connection into the
// single human-readable string placed in failure envelopes. Classification
// order: HTTP-status-bearing, then code-bearing, then generic.
func Classify(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		switch {
		case se.StatusCode > 0:
			return fmt.Sprintf("OCI API Error (%d): %s", se.StatusCode, se.Message)
		case se.Code != "":
			return fmt.Sprintf("OCI Error (%s): %s", se.Code, se.Message)
		default:
			return fmt.Sprintf("OCI Error: %s", se.Message)
		}
	}
	return fmt.Sprintf("OCI Error: %s", err.Error())
}
