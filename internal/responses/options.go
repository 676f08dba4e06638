package responses

// A Fn overrides part of a descriptor for a single invocation.
type Fn func(*invocation)

type invocation struct {
	message string
	data    any
	hasData bool
}

// Message overrides the default message. An empty string counts as not
// provided and leaves the default in place.
func Message(msg string) Fn {
	return func(in *invocation) {
		if msg != "" {
			in.message = msg
		}
	}
}

// Data overrides the default payload. Data(nil) writes an explicit null even
// when the descriptor carries a default payload.
func Data(v any) Fn {
	return func(in *invocation) {
		in.data = v
		in.hasData = true
	}
}

// resolve applies fns over d and builds the body to write.
func resolve(d Descriptor, fns []Fn) Body {
	in := invocation{message: d.Message, data: d.Data}
	for _, fn := range fns {
		if fn != nil {
			fn(&in)
		}
	}
	return Body{Status: d.Status, Message: in.message, Data: in.data}
}
