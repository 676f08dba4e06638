// Package responses maps symbolic (category, code) pairs such as
// "success.ok" or "clientError.notFound" to HTTP responses with a fixed
// status, an overridable default message and an optional payload.
//
// A Registry is seeded with a small built-in table and can be extended or
// trimmed at runtime through Register and Remove. Writing a response never
// touches the network directly: the registry only needs a Writer, which
// *gin.Context satisfies as-is and HTTPWriter provides for plain net/http.
//
// Every response body has the same shape:
//
//	{ "status": 404, "message": "Not Found", "data": null }
//
// Typical usage:
//
//	reg := responses.New()
//	reg.MustRegister("clientError", "conflict", http.StatusConflict, "Conflict", nil)
//
//	func handler(c *gin.Context) {
//	    _, _ = reg.Invoke(c, "clientError", "notFound", responses.Message("user not found"))
//	}
//
// Errors returned by Register and Remove are local validation failures and are
// never written to a client by the registry itself.
package responses
