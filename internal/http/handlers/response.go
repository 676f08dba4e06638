// Package handlers provides HTTP handler implementations for the public API.
//
// This file holds the response helpers. Success and failure both leave as
// registry envelopes, so a client sees one body shape everywhere:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "status": 404,
//	  "message": "response code not found",
//	  "data": { "request_id": "123e4567-e89b-12d3-a456-426614174000", "code": "not_found" }
//	}
//
//	HTTP/1.1 201 Created
//	{ "status": 201, "message": "Created", "data": { "category": "custom", ... } }
//
// fail logs 5xx responses with the request-scoped logger.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-response-codes/internal/http/middleware"
	"github.com/tbourn/go-response-codes/internal/responses"
)

// ErrorResponse documents the error envelope for OpenAPI.
type ErrorResponse struct {
	Status  int                  `json:"status" example:"404"`
	Message string               `json:"message" example:"response code not found"`
	Data    middleware.ErrorData `json:"data"`
}

// fail aborts with the registry envelope mapped to errCode.
func fail(c *gin.Context, reg *responses.Registry, errCode, msg string) {
	t := targetFor(errCode)
	if t.status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", t.status).
			Str("code", errCode).
			Str("message", msg).
			Msg("api error")
	}
	middleware.AbortWithCode(c, reg, t.category, t.code, t.status, errCode, msg)
}

// Fail is the exported variant of fail for router fallbacks.
func Fail(c *gin.Context, reg *responses.Registry, errCode, msg string) { fail(c, reg, errCode, msg) }

// ok writes the success.<code> envelope carrying data. If the code has been
// removed from the registry the same envelope is written with fallback.
func ok(c *gin.Context, reg *responses.Registry, code string, fallback int, data any) {
	middleware.SetResponseCode(c, responses.CategorySuccess, code)
	if reg != nil {
		if _, err := reg.Invoke(c, responses.CategorySuccess, code, responses.Data(data)); err == nil {
			return
		}
	}
	c.JSON(fallback, responses.Body{Status: fallback, Message: http.StatusText(fallback), Data: data})
}

// bindFailure maps a body decoding error to an error code.
func bindFailure(err error) (string, string) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return ErrCodePayloadTooLarge, "request body too large"
	}
	return ErrCodeBadRequest, "invalid JSON body"
}
