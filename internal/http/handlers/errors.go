// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Every error is written as a registry envelope. The table below maps each
// stable, machine-readable code (data.code) to the registry code that carries
// it and to the status used if that registry code has been removed.
//
// Example response:
//
//	{
//	  "status": 409,
//	  "message": "response code \"weird\" already exists in category \"custom\"",
//	  "data": { "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6", "code": "conflict" }
//	}
package handlers

import (
	"net/http"

	"github.com/tbourn/go-response-codes/internal/http/middleware"
	"github.com/tbourn/go-response-codes/internal/responses"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodePayloadTooLarge  = "payload_too_large"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeInvalidCode    = "invalid_code"
	ErrCodeInvalidData    = "invalid_data"
	ErrCodeRegisterFailed = "register_failed"
	ErrCodeRemoveFailed   = "remove_failed"
	ErrCodeStoreFailed    = "store_unavailable"
)

type errorTarget struct {
	category, code string
	status         int
}

var (
	badRequest = errorTarget{responses.CategoryClientError, responses.CodeBadRequest, http.StatusBadRequest}
	internal   = errorTarget{responses.CategoryServerError, responses.CodeInternalServerError, http.StatusInternalServerError}
)

var errorTargets = map[string]errorTarget{
	ErrCodeBadRequest:       badRequest,
	ErrCodeInvalidCode:      badRequest,
	ErrCodeInvalidData:      badRequest,
	ErrCodeNotFound:         {responses.CategoryClientError, responses.CodeNotFound, http.StatusNotFound},
	ErrCodeConflict:         {responses.CategoryClientError, middleware.CodeConflict, http.StatusConflict},
	ErrCodeMethodNotAllowed: {responses.CategoryClientError, middleware.CodeMethodNotAllowed, http.StatusMethodNotAllowed},
	ErrCodePayloadTooLarge:  {responses.CategoryClientError, middleware.CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
	ErrCodeInternal:         internal,
	ErrCodeRegisterFailed:   internal,
	ErrCodeRemoveFailed:     internal,
	ErrCodeStoreFailed:      internal,
}

// targetFor falls back to serverError.internalServerError for unknown codes.
func targetFor(errCode string) errorTarget {
	if t, ok := errorTargets[errCode]; ok {
		return t
	}
	return internal
}
