package responses

import "fmt"

// Descriptor is the response template stored for a (category, code) pair.
type Descriptor struct {
	// Status is the HTTP status code written, in [100, 599].
	Status int `json:"status" example:"404"`
	// Message is used when the caller does not supply a non-empty message.
	Message string `json:"message" example:"Not Found"`
	// Data is used when the caller does not override the payload. Nil encodes as null.
	Data any `json:"data"`
}

// Body is the JSON envelope written for every invocation.
type Body struct {
	Status  int    `json:"status" example:"200"`
	Message string `json:"message" example:"OK"`
	Data    any    `json:"data"`
}

// Entry is a snapshot row returned by Registry.Entries.
type Entry struct {
	Category string `json:"category" example:"clientError"`
	Code     string `json:"code" example:"notFound"`
	Builtin  bool   `json:"builtin"`

	Descriptor `json:"descriptor"`
}

// Key renders the dotted form of the pair, e.g. "clientError.notFound".
func (e Entry) Key() string { return Key(e.Category, e.Code) }

// Key renders a (category, code) pair in dotted form.
func Key(category, code string) string {
	return fmt.Sprintf("%s.%s", category, code)
}

// validate checks the inputs of Register before any mutation happens.
func validate(category, code string, status int, message string) error {
	switch {
	case category == "":
		return fmt.Errorf("%w: empty category", ErrInvalidDescriptor)
	case code == "":
		return fmt.Errorf("%w: empty code", ErrInvalidDescriptor)
	case status < 100 || status > 599:
		return fmt.Errorf("%w: status %d outside [100, 599]", ErrInvalidDescriptor, status)
	case message == "":
		return fmt.Errorf("%w: empty default message", ErrInvalidDescriptor)
	}
	return nil
}
