// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the error envelope shared by middleware and handlers.
// Every error leaves the service as a registry response:
//
//	{
//	  "status":  429,
//	  "message": "rate limit exceeded",
//	  "data":    { "request_id": "<uuid>", "code": "too_many_requests" }
//	}
//
// data.code is a stable, machine-readable string clients can branch on.
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-response-codes/internal/responses"
)

// ErrorData is the data payload of every error envelope.
type ErrorData struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code
	Code string `json:"code" example:"not_found"`
}

// RequestIDFrom returns the correlation id assigned by RequestID, falling
// back to the response header.
func RequestIDFrom(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s := asString(v); s != "" {
			return s
		}
	}
	return c.Writer.Header().Get(requestIDHeader)
}

// AbortWithCode writes the registry response for (category, code) with msg
// and an ErrorData payload, then aborts the chain.
//
// Codes can be removed at runtime, so when reg is nil or the pair is gone
// the same envelope is written directly with fallbackStatus.
func AbortWithCode(c *gin.Context, reg *responses.Registry, category, code string, fallbackStatus int, errCode, msg string) {
	data := ErrorData{RequestID: RequestIDFrom(c), Code: errCode}
	SetResponseCode(c, category, code)
	if reg != nil {
		if _, err := reg.Invoke(c, category, code, responses.Message(msg), responses.Data(data)); err == nil {
			c.Abort()
			return
		}
	}
	c.AbortWithStatusJSON(fallbackStatus, responses.Body{Status: fallbackStatus, Message: msg, Data: data})
}
