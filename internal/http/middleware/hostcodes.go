package middleware

import (
	"net/http"

	"github.com/tbourn/go-response-codes/internal/responses"
)

// Codes the HTTP layer writes beyond the built-in table.
const (
	CodeConflict         = "conflict"
	CodeMethodNotAllowed = "methodNotAllowed"
	CodeTooManyRequests  = "tooManyRequests"
	CodePayloadTooLarge  = "payloadTooLarge"
)

// HostCode is a code registered at startup by the HTTP layer.
type HostCode struct {
	Category, Code string
	Status         int
	Message        string
}

// HostCodes lists the codes middleware and handlers rely on.
var HostCodes = []HostCode{
	{responses.CategoryClientError, CodeConflict, http.StatusConflict, "Conflict"},
	{responses.CategoryClientError, CodeMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed"},
	{responses.CategoryClientError, CodeTooManyRequests, http.StatusTooManyRequests, "Too Many Requests"},
	{responses.CategoryClientError, CodePayloadTooLarge, http.StatusRequestEntityTooLarge, "Payload Too Large"},
}

// RegisterHostCodes adds every HostCodes entry missing from reg and returns
// how many were added. Entries already present (restored from the store, for
// instance) are left untouched.
func RegisterHostCodes(reg *responses.Registry) int {
	n := 0
	for _, hc := range HostCodes {
		if _, err := reg.Describe(hc.Category, hc.Code); err == nil {
			continue
		}
		if err := reg.Register(hc.Category, hc.Code, hc.Status, hc.Message, nil); err == nil {
			n++
		}
	}
	return n
}
