package responses

import "net/http"

// Built-in categories.
const (
	CategorySuccess     = "success"
	CategoryClientError = "clientError"
	CategoryServerError = "serverError"
)

// Built-in codes.
const (
	CodeOK                  = "ok"
	CodeCreated             = "created"
	CodeAccepted            = "accepted"
	CodeBadRequest          = "badRequest"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "notFound"
	CodeInternalServerError = "internalServerError"
)

type builtin struct {
	category, code string
	status         int
	message        string
}

// builtins is the table every registry built by New starts from.
var builtins = []builtin{
	{CategorySuccess, CodeOK, http.StatusOK, "OK"},
	{CategorySuccess, CodeCreated, http.StatusCreated, "Created"},
	{CategorySuccess, CodeAccepted, http.StatusAccepted, "Accepted"},
	{CategoryClientError, CodeBadRequest, http.StatusBadRequest, "Bad Request"},
	{CategoryClientError, CodeUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{CategoryClientError, CodeForbidden, http.StatusForbidden, "Forbidden"},
	{CategoryClientError, CodeNotFound, http.StatusNotFound, "Not Found"},
	{CategoryServerError, CodeInternalServerError, http.StatusInternalServerError, "Internal Server Error"},
}
