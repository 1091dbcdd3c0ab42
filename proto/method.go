package proto

// Method is an HTTP request method.
type Method int

const (
	MethodUnknown Method = iota
	MethodGet
	MethodPost
	MethodPut
)

// String returns the wire form of the method, or "Unknown".
func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	case MethodPut:
		return "PUT"
	default:
		return "Unknown"
	}
}

// ParseMethod maps a request-line token to a [Method].
// Matching is case-sensitive, as method tokens are on the wire.
func ParseMethod(s string) Method {
	switch s {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	default:
		return MethodUnknown
	}
}

// Protocol is an HTTP protocol version label.
//
// The server only speaks HTTP/1.1 framing; the value is carried on the
// request for handlers that want to report it.
type Protocol int

const (
	ProtocolUnknown Protocol = iota
	ProtocolV10
	ProtocolV11
	ProtocolV20
	ProtocolV30
)

// String returns a human readable label such as "HTTP 1.1".
func (p Protocol) String() string {
	switch p {
	case ProtocolV10:
		return "HTTP 1.0"
	case ProtocolV11:
		return "HTTP 1.1"
	case ProtocolV20:
		return "HTTP 2.0"
	case ProtocolV30:
		return "HTTP 3.0"
	default:
		return "Unknown"
	}
}

// ParseProtocol accepts both the request-line form ("HTTP/1.1") and the
// label form returned by [Protocol.String] ("HTTP 1.1").
func ParseProtocol(s string) Protocol {
	switch s {
	case "HTTP/1.0", "HTTP 1.0":
		return ProtocolV10
	case "HTTP/1.1", "HTTP 1.1":
		return ProtocolV11
	case "HTTP/2", "HTTP/2.0", "HTTP 2.0":
		return ProtocolV20
	case "HTTP/3", "HTTP/3.0", "HTTP 3.0":
		return ProtocolV30
	default:
		return ProtocolUnknown
	}
}
