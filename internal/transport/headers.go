package transport

import "net/http"

// Headers is an immutable set of request headers. With returns a modified
// copy, so a Headers value can be shared between goroutines and requests.
type Headers struct {
	values map[string]string
}

// NewHeaders builds a header set from key/value pairs
func NewHeaders(pairs map[string]string) Headers {
	values := make(map[string]string, len(pairs))
	for k, v := range pairs {
		values[k] = v
	}
	return Headers{values: values}
}

// With returns a copy of h with key set to value
func (h Headers) With(key, value string) Headers {
	values := make(map[string]string, len(h.values)+1)
	for k, v := range h.values {
		values[k] = v
	}
	values[key] = value
	return Headers{values: values}
}

// Get returns the value of key, or "" when absent
func (h Headers) Get(key string) string {
	return h.values[key]
}

// Len returns the number of headers in the set
func (h Headers) Len() int {
	return len(h.values)
}

func (h Headers) apply(req *http.Request) {
	for k, v := range h.values {
		req.Header.Set(k, v)
	}
}
