// Package proto holds the fixed HTTP lookup tables used by httpie.
//
// It maps wire strings to small enum types and back:
//
//   - [Method]: request methods the server distinguishes (GET, POST, PUT)
//   - [Protocol]: protocol version labels (informational only)
//   - [ContentType]: media types, plus [GuessContentType] for file extensions
//   - [StatusCode]: response status codes with their reason phrases
//
// Every parse function is total: unrecognised input maps to the Unknown
// value of its type rather than returning an error.
package proto
