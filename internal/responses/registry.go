package responses

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Handler writes one specific response into w. Handlers are bound to the
// descriptor that was current when Lookup returned them.
type Handler func(w Writer, fns ...Fn) Writer

// Observer is notified after every response the registry writes.
type Observer func(category, code string, status int)

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithObserver installs fn as the write observer. A nil fn is ignored.
func WithObserver(fn Observer) Option {
	return func(r *Registry) {
		if fn != nil {
			r.observer = fn
		}
	}
}

type entry struct {
	d       Descriptor
	builtin bool
}

// Registry is the category -> code -> Descriptor table.
// It is safe for concurrent use; a single lock guards the whole table.
type Registry struct {
	mu       sync.RWMutex
	codes    map[string]map[string]entry
	version  atomic.Uint64
	observer Observer
}

// New returns a registry seeded with the built-in table.
func New(opts ...Option) *Registry {
	r := NewEmpty(opts...)
	for _, b := range builtins {
		r.put(b.category, b.code, Descriptor{Status: b.status, Message: b.message}, true)
	}
	return r
}

// NewEmpty returns a registry without the built-in table.
func NewEmpty(opts ...Option) *Registry {
	r := &Registry{codes: make(map[string]map[string]entry)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// put inserts without checks; callers hold the write lock or own r exclusively.
func (r *Registry) put(category, code string, d Descriptor, builtin bool) {
	codes, ok := r.codes[category]
	if !ok {
		codes = make(map[string]entry)
		r.codes[category] = codes
	}
	codes[code] = entry{d: d, builtin: builtin}
	r.version.Add(1)
}

// Register adds a descriptor under (category, code). The category is created
// when missing. An occupied pair is never overwritten: Register returns a
// *CodeAlreadyExistsError and the prior descriptor stays in place.
func (r *Registry) Register(category, code string, status int, message string, data any) error {
	if err := validate(category, code, status, message); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	codes, ok := r.codes[category]
	if !ok {
		codes = make(map[string]entry)
		r.codes[category] = codes
	}
	if _, exists := codes[code]; exists {
		return &CodeAlreadyExistsError{Category: category, Code: code}
	}
	codes[code] = entry{d: Descriptor{Status: status, Message: message, Data: data}}
	r.version.Add(1)
	return nil
}

// MustRegister panics on registration error. Useful during startup wiring.
func (r *Registry) MustRegister(category, code string, status int, message string, data any) {
	if err := r.Register(category, code, status, message, data); err != nil {
		panic(err)
	}
}

// Remove deletes the descriptor under (category, code). The category itself
// is kept even when it becomes empty.
func (r *Registry) Remove(category, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	codes, ok := r.codes[category]
	if !ok {
		return &CodeNotFoundError{Category: category, Code: code}
	}
	if _, ok := codes[code]; !ok {
		return &CodeNotFoundError{Category: category, Code: code}
	}
	delete(codes, code)
	r.version.Add(1)
	return nil
}

// Describe returns the descriptor currently stored under (category, code).
func (r *Registry) Describe(category, code string) (Descriptor, error) {
	e, ok := r.get(category, code)
	if !ok {
		return Descriptor{}, &CodeNotFoundError{Category: category, Code: code}
	}
	return e.d, nil
}

// Lookup returns a handler bound to the current descriptor of
// (category, code), or false when the pair does not exist.
func (r *Registry) Lookup(category, code string) (Handler, bool) {
	e, ok := r.get(category, code)
	if !ok {
		return nil, false
	}
	return func(w Writer, fns ...Fn) Writer {
		return r.write(w, category, code, e.d, fns)
	}, true
}

// Invoke writes the response for (category, code) into w and returns w so
// callers may keep chaining on their transport. A missing pair returns a
// *CodeNotFoundError and nothing is written.
func (r *Registry) Invoke(w Writer, category, code string, fns ...Fn) (Writer, error) {
	e, ok := r.get(category, code)
	if !ok {
		return w, &CodeNotFoundError{Category: category, Code: code}
	}
	return r.write(w, category, code, e.d, fns), nil
}

// IsBuiltin reports whether (category, code) currently holds a descriptor
// seeded from the built-in table.
func (r *Registry) IsBuiltin(category, code string) bool {
	e, ok := r.get(category, code)
	return ok && e.builtin
}

// Version increases on every successful mutation.
func (r *Registry) Version() uint64 { return r.version.Load() }

// Len returns the number of stored descriptors across all categories.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, codes := range r.codes {
		n += len(codes)
	}
	return n
}

// Categories returns all category names, including empty ones, sorted.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.codes))
	for c := range r.codes {
		out = append(out, c)
	}
	r.mu.RUnlock()

	sort.Strings(out)
	return out
}

// Entries returns a snapshot of all descriptors ordered by category, then code.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	items := make([]Entry, 0, len(r.codes)*4)
	for category, codes := range r.codes {
		for code, e := range codes {
			items = append(items, Entry{Category: category, Code: code, Descriptor: e.d, Builtin: e.builtin})
		}
	}
	r.mu.RUnlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].Category == items[j].Category {
			return items[i].Code < items[j].Code
		}
		return items[i].Category < items[j].Category
	})
	return items
}

func (r *Registry) get(category, code string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.codes[category][code]
	return e, ok
}

// write runs outside the lock: the transport may be slow.
func (r *Registry) write(w Writer, category, code string, d Descriptor, fns []Fn) Writer {
	body := resolve(d, fns)
	w.JSON(body.Status, body)
	if r.observer != nil {
		r.observer(category, code, body.Status)
	}
	return w
}
