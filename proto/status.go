package proto

import (
	"strconv"
	"strings"
)

// StatusCode is an HTTP response status code. The zero value is
// [StatusUnknown].
type StatusCode int

const StatusUnknown StatusCode = 0

// Status codes referenced directly by the server.
const (
	StatusOK                  StatusCode = 200
	StatusNotFound            StatusCode = 404
	StatusInternalServerError StatusCode = 500
	StatusServiceUnavailable  StatusCode = 503
)

var reasons = map[StatusCode]string{
	100: "Continue",
	101: "Switching Protocols",
	102: "Processing",
	103: "Early Hints",

	200: "OK",
	201: "Created",
	202: "Accepted",
	203: "Non-Authoritative Information",
	204: "No Content",
	205: "Reset Content",
	206: "Partial Content",
	207: "Multi-Status",
	208: "Already Reported",
	226: "IM Used",

	300: "Multiple Choices",
	301: "Moved Permanently",
	302: "Moved Temporarily",
	303: "See Other",
	304: "Not Modified",
	305: "Use Proxy",
	306: "Reserved",
	307: "Temporary Redirect",
	308: "Permanent Redirect",

	400: "Bad Request",
	401: "Unauthorized",
	402: "Payment Required",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	406: "Not Acceptable",
	407: "Proxy Authentication Required",
	408: "Request Timeout",
	409: "Conflict",
	410: "Gone",
	411: "Length Required",
	412: "Precondition Failed",
	413: "Payload Too Large",
	414: "URI Too Long",
	415: "Unsupported Media Type",
	416: "Range Not Satisfiable",
	417: "Expectation Failed",
	418: "I'm a teapot",
	419: "Authentication Timeout",
	421: "Misdirected Request",
	422: "Unprocessable Entity",
	423: "Locked",
	424: "Failed Dependency",
	425: "Too Early",
	426: "Upgrade Required",
	428: "Precondition Required",
	429: "Too Many Requests",
	431: "Request Header Fields Too Large",
	449: "Retry With",
	451: "Unavailable For Legal Reasons",
	499: "Client Closed Request",

	500: "Internal Server Error",
	501: "Not Implemented",
	502: "Bad Gateway",
	503: "Service Unavailable",
	504: "Gateway Timeout",
	505: "HTTP Version Not Supported",
	506: "Variant Also Negotiates",
	507: "Insufficient Storage",
	508: "Loop Detected",
	509: "Bandwidth Limit Exceeded",
	510: "Not Extended",
	511: "Network Authentication Required",

	520: "Unknown Error",
	521: "Web Server Is Down",
	522: "Connection Timed Out",
	523: "Origin Is Unreachable",
	524: "A Timeout Occurred",
	525: "SSL Handshake Failed",
	526: "Invalid SSL Certificate",
}

// Code returns the numeric status code, or 0 for an unknown status.
func (s StatusCode) Code() int {
	if _, ok := reasons[s]; !ok {
		return 0
	}
	return int(s)
}

// Reason returns the reason phrase, e.g. "Not Found".
func (s StatusCode) Reason() string {
	return reasons[s]
}

// String returns the status text used on the status line, e.g. "404 Not Found".
// Codes outside the table render as "Unknown".
func (s StatusCode) String() string {
	reason, ok := reasons[s]
	if !ok {
		return "Unknown"
	}
	return strconv.Itoa(int(s)) + " " + reason
}

// ParseStatusCode maps status text such as "404 Not Found", or a bare code
// such as "404", to a [StatusCode]. The reason phrase is matched
// case-insensitively.
func ParseStatusCode(s string) StatusCode {
	s = strings.TrimSpace(s)
	codeStr, reason, hasReason := strings.Cut(s, " ")

	n, err := strconv.Atoi(codeStr)
	if err != nil {
		return StatusUnknown
	}
	code := StatusCode(n)
	want, ok := reasons[code]
	if !ok {
		return StatusUnknown
	}
	if hasReason && !strings.EqualFold(strings.TrimSpace(reason), want) {
		return StatusUnknown
	}
	return code
}
