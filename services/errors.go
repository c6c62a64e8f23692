package services

import "net/http"

// ServiceError carries a stable snake_case code and the HTTP status the
// controllers should surface it with. Codes are API contract; messages are
// never stack traces.
type ServiceError struct {
	Status int
	Code   string
}

func (e *ServiceError) Error() string {
	return e.Code
}

func errBadRequest(code string) *ServiceError {
	return &ServiceError{Status: http.StatusBadRequest, Code: code}
}

func errUnauthorized(code string) *ServiceError {
	return &ServiceError{Status: http.StatusUnauthorized, Code: code}
}

func errForbidden(code string) *ServiceError {
	return &ServiceError{Status: http.StatusForbidden, Code: code}
}

func errNotFound(code string) *ServiceError {
	return &ServiceError{Status: http.StatusNotFound, Code: code}
}

func errConflict(code string) *ServiceError {
	return &ServiceError{Status: http.StatusConflict, Code: code}
}

func errInternal(code string) *ServiceError {
	return &ServiceError{Status: http.StatusInternalServerError, Code: code}
}
