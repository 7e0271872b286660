// Package common provides shared HTTP utility functions for API handlers.
package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// GetAndValidateURLParam extracts, decodes, and validates a URL parameter from the request.
// Validation rules:
// - Must not be empty after trimming whitespace
// - Must not contain any whitespace characters
func GetAndValidateURLParam(r *http.Request, paramName string) (string, error) {
	encodedValue := chi.URLParam(r, paramName)

	decoded, err := url.PathUnescape(encodedValue)
	if err != nil {
		return "", fmt.Errorf("invalid URL encoding in %s", paramName)
	}

	if strings.TrimSpace(decoded) == "" {
		return "", fmt.Errorf("%s cannot be empty", paramName)
	}

	if strings.ContainsAny(decoded, " \t\n\r") {
		return "", fmt.Errorf("%s cannot contain whitespace", paramName)
	}

	return decoded, nil
}

// GetIntURLParam extracts a URL parameter that must be an integer
func GetIntURLParam(r *http.Request, paramName string) (int, error) {
	value, err := GetAndValidateURLParam(r, paramName)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", paramName)
	}
	return n, nil
}

// GetOptionalQueryParam returns the value of a query parameter, or nil when it is absent or empty
func GetOptionalQueryParam(r *http.Request, paramName string) *string {
	value := r.URL.Query().Get(paramName)
	if value == "" {
		return nil
	}
	return &value
}

// GetOptionalIntQueryParam returns the integer value of a query parameter,
// or nil when it is absent or empty
func GetOptionalIntQueryParam(r *http.Request, paramName string) (*int, error) {
	value := GetOptionalQueryParam(r, paramName)
	if value == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter: must be an integer", paramName)
	}
	return &n, nil
}
