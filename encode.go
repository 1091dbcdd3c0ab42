package httpie

import (
	"fmt"
	"io"
)

// WriteResponse serializes resp as an HTTP/1.1 response.
//
// The header block carries the status line, Content-Length and
// Content-Type. Text bodies are written together with the header block; raw
// bodies follow in a second write. An empty body is sent as
// Content-Length: 0. The caller is responsible for flushing w.
func WriteResponse(w io.Writer, resp Response) error {
	header := fmt.Sprintf("HTTP/1.1 %s\r\nContent-Length: %d\r\nContent-Type: %s\r\n\r\n",
		resp.Status, resp.Body.Len(), resp.ContentType.MediaType())

	switch resp.Body.kind {
	case ContentText, ContentShared:
		if _, err := io.WriteString(w, header+resp.Body.text); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	case ContentRaw:
		if _, err := io.WriteString(w, header); err != nil {
			return fmt.Errorf("write response header: %w", err)
		}
		if _, err := w.Write(resp.Body.raw); err != nil {
			return fmt.Errorf("write response body: %w", err)
		}
	default:
		if _, err := io.WriteString(w, header); err != nil {
			return fmt.Errorf("write response header: %w", err)
		}
	}
	return nil
}
