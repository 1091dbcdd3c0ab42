package httpie

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jpalmerr/httpie/proto"
)

// DefaultReadBufferSize is the size of the single read a request line and
// header block must fit into.
const DefaultReadBufferSize = 1024

const contentLengthHeader = "Content-Length:"

// maxBodyPrealloc caps the up-front allocation for a declared body so a
// large Content-Length cannot reserve memory the client never sends.
const maxBodyPrealloc = 64 << 10

// ReadRequest decodes one request from r.
//
// The request line and headers are taken from a single read of at most
// bufSize bytes; anything past that is not seen, so oversized header blocks
// are parsed in truncated form. Body bytes that arrived in the same read are
// used first, then reading continues until Content-Length bytes have been
// collected or the stream ends.
//
// Malformed input never fails: unknown tokens decode to their Unknown value
// and an unparsable Content-Length is treated as 0. The only error returned
// is a first read that produced no bytes at all. A short body is logged and
// returned as-is.
func ReadRequest(r io.Reader, bufSize int, logger *slog.Logger) (Request, error) {
	if bufSize <= 0 {
		bufSize = DefaultReadBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	buf := make([]byte, bufSize)
	n, err := r.Read(buf)
	if n == 0 && err != nil {
		return Request{}, fmt.Errorf("read request: %w", err)
	}
	raw := buf[:n]
	head := string(raw)

	method, target, protocol := requestLine(head)
	path, rawQuery, _ := strings.Cut(target, "?")

	req := Request{
		Path:          path,
		Params:        parseQuery(rawQuery),
		Method:        proto.ParseMethod(method),
		Protocol:      proto.ParseProtocol(protocol),
		ContentLength: parseContentLength(head),
		ContentType:   proto.ContentTypeUnknown,
	}

	if req.ContentLength > 0 {
		req.Body = readBody(r, raw, req.ContentLength, logger)
	}

	return req, nil
}

// requestLine returns the first three whitespace separated tokens.
func requestLine(s string) (method, target, protocol string) {
	fields := strings.Fields(s)
	if len(fields) > 0 {
		method = fields[0]
	}
	if len(fields) > 1 {
		target = fields[1]
	}
	if len(fields) > 2 {
		protocol = fields[2]
	}
	return method, target, protocol
}

// parseQuery splits a raw query string on '&' and each pair on the first
// '='. An empty query yields one pair of empty strings.
func parseQuery(raw string) []Param {
	pairs := strings.Split(raw, "&")
	params := make([]Param, 0, len(pairs))
	for _, pair := range pairs {
		key, value, _ := strings.Cut(pair, "=")
		params = append(params, Param{Key: key, Value: value})
	}
	return params
}

// parseContentLength finds the literal "Content-Length:" header and parses
// the digits up to the end of the line. Any failure yields 0.
func parseContentLength(head string) int {
	i := strings.Index(head, contentLengthHeader)
	if i < 0 {
		return 0
	}
	value := head[i+len(contentLengthHeader):]
	if end := strings.IndexAny(value, "\r\n"); end >= 0 {
		value = value[:end]
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// readBody collects length body bytes: first whatever followed the blank
// line in the initial read, then the rest from r.
func readBody(r io.Reader, raw []byte, length int, logger *slog.Logger) []byte {
	var early []byte
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		early = raw[i+4:]
		if len(early) > length {
			early = early[:length]
		}
	}

	var body bytes.Buffer
	body.Grow(min(length, maxBodyPrealloc))
	body.Write(early)

	remaining := int64(length - len(early))
	if remaining > 0 {
		if _, err := io.CopyN(&body, r, remaining); err != nil {
			logger.Warn("short request body",
				"declared", length,
				"received", body.Len(),
				"error", err,
			)
		}
	}

	return body.Bytes()
}
