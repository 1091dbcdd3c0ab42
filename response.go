package httpie

import "github.com/jpalmerr/httpie/proto"

// ContentKind tags the representation held by a [Content].
type ContentKind int

const (
	// ContentNone is an empty body.
	ContentNone ContentKind = iota

	// ContentText is text produced for this response.
	ContentText

	// ContentShared is constant text shared between responses, such as the
	// built-in error pages.
	ContentShared

	// ContentRaw is an arbitrary byte buffer.
	ContentRaw
)

// Content is a response body. The zero value is an empty body.
type Content struct {
	kind ContentKind
	text string
	raw  []byte
}

// Text returns a text body.
func Text(s string) Content {
	return Content{kind: ContentText, text: s}
}

// Shared returns a body backed by constant text.
func Shared(s string) Content {
	return Content{kind: ContentShared, text: s}
}

// Raw returns a byte body. The slice is not copied.
func Raw(b []byte) Content {
	return Content{kind: ContentRaw, raw: b}
}

// Kind reports which representation the body holds.
func (c Content) Kind() ContentKind {
	return c.kind
}

// Len returns the body length in bytes.
func (c Content) Len() int {
	switch c.kind {
	case ContentText, ContentShared:
		return len(c.text)
	case ContentRaw:
		return len(c.raw)
	default:
		return 0
	}
}

// String returns the body as a string. Raw bodies are converted.
func (c Content) String() string {
	if c.kind == ContentRaw {
		return string(c.raw)
	}
	return c.text
}

// Response is what a handler, the static resolver, or a built-in error page
// produces for one request.
type Response struct {
	Body        Content
	Status      proto.StatusCode
	ContentType proto.ContentType
}

// TextResponse is a shorthand for a response with a text body.
func TextResponse(status proto.StatusCode, ct proto.ContentType, body string) Response {
	return Response{Body: Text(body), Status: status, ContentType: ct}
}

const notFoundPage = `
<!DOCTYPE html>
<html lang="en">
<head><title>404 Not Found</title></head>
<body><h1>Not Found</h1>The requested URL was not found on this server.</body>
</html>`

const serverErrorPage = `
<!DOCTYPE html>
<html lang="en">
<head><title>500 Internal Server Error</title></head>
<body><h1>Internal Server Error</h1>The server could not complete the request.</body>
</html>`

const unavailablePage = `
<!DOCTYPE html>
<html lang="en">
<head><title>503 Service Unavailable</title></head>
<body><h1>Service Unavailable</h1>The server is too busy to handle the request.</body>
</html>`

var (
	notFound = Response{
		Body:        Shared(notFoundPage),
		Status:      proto.StatusNotFound,
		ContentType: proto.TextHTML,
	}
	serverError = Response{
		Body:        Shared(serverErrorPage),
		Status:      proto.StatusInternalServerError,
		ContentType: proto.TextHTML,
	}
	serviceUnavailable = Response{
		Body:        Shared(unavailablePage),
		Status:      proto.StatusServiceUnavailable,
		ContentType: proto.TextHTML,
	}
)

// NotFound returns the built-in 404 page.
func NotFound() Response { return notFound }

// ServerError returns the built-in 500 page.
func ServerError() Response { return serverError }

// ServiceUnavailable returns the built-in 503 page sent when a connection is
// shed because the job queue is full.
func ServiceUnavailable() Response { return serviceUnavailable }
