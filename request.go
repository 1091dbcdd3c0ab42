package httpie

import "github.com/jpalmerr/httpie/proto"

// Param is one key/value pair from the query string.
type Param struct {
	Key   string
	Value string
}

// Request is a decoded HTTP request.
//
// A Request is built once per connection by [ReadRequest] and is not
// modified afterwards. Handlers receive it by value; they must not mutate
// the Params or Body slices.
type Request struct {
	// Path is the request target up to the first '?'.
	Path string

	// Params holds the query string pairs in the order they appeared.
	// Duplicate keys are kept. A request without a query string carries a
	// single pair of two empty strings.
	Params []Param

	Method   proto.Method
	Protocol proto.Protocol

	// Body holds up to ContentLength bytes. It is shorter than
	// ContentLength when the client closed the connection early.
	Body []byte

	// ContentLength is the value of the Content-Length header, or 0.
	ContentLength int

	// ContentType is always [proto.ContentTypeUnknown]; request
	// Content-Type headers are not parsed.
	ContentType proto.ContentType

	// RemoteAddr is the peer address of the connection, when known.
	RemoteAddr string
}

// Param returns the value of the first query parameter named key.
func (r Request) Param(key string) (string, bool) {
	for _, p := range r.Params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// ParamValues returns every value for key, in order of appearance.
func (r Request) ParamValues(key string) []string {
	var values []string
	for _, p := range r.Params {
		if p.Key == key {
			values = append(values, p.Value)
		}
	}
	return values
}
