package responses

import (
	"net/http"

	"github.com/gin-gonic/gin/render"
)

// Writer is the transport a response is written into: it records the status
// and serializes obj as the JSON body. *gin.Context implements it.
type Writer interface {
	JSON(code int, obj any)
}

// HTTPWriter adapts a plain http.ResponseWriter to Writer.
type HTTPWriter struct {
	http.ResponseWriter
}

// JSON writes the status line and the JSON-encoded obj. Encoding errors after
// the header has been sent can no longer change the status and are dropped.
func (w HTTPWriter) JSON(code int, obj any) {
	r := render.JSON{Data: obj}
	r.WriteContentType(w.ResponseWriter)
	w.WriteHeader(code)
	_ = r.Render(w.ResponseWriter)
}
