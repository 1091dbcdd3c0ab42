package proto

import (
	"path"
	"strings"
)

// ContentType is a media type the server knows how to label.
type ContentType int

const (
	ContentTypeUnknown ContentType = iota
	TextPlain
	TextHTML
	TextCSS
	ImagePNG
	ImageJPEG
	ImageWebP
	ImageIcon
	ApplicationJavaScript
	ApplicationJSON
	ApplicationWasm
	ApplicationXML
	AudioAAC
	AudioMPEG
	AudioOGG
	AudioWebM
	VideoMPEG
	VideoMP4
	VideoWebM
)

var mediaTypes = map[ContentType]string{
	ContentTypeUnknown:    "*/*",
	TextPlain:             "text/plain",
	TextHTML:              "text/html",
	TextCSS:               "text/css",
	ImagePNG:              "image/png",
	ImageJPEG:             "image/jpeg",
	ImageWebP:             "image/webp",
	ImageIcon:             "image/vnd.microsoft.icon",
	ApplicationJavaScript: "application/javascript",
	ApplicationJSON:       "application/json",
	ApplicationWasm:       "application/wasm",
	ApplicationXML:        "application/xml",
	AudioAAC:              "audio/aac",
	AudioMPEG:             "audio/mpeg",
	AudioOGG:              "audio/ogg",
	AudioWebM:             "audio/webm",
	VideoMPEG:             "video/mpeg",
	VideoMP4:              "video/mp4",
	VideoWebM:             "video/webm",
}

// aliases are accepted by ParseContentType in addition to the canonical names.
var aliases = map[string]ContentType{
	"text/javascript": ApplicationJavaScript,
	"text/xml":        ApplicationXML,
	"image/ico":       ImageIcon,
	"image/x-icon":    ImageIcon,
}

var extensions = map[string]ContentType{
	"html": TextHTML,
	"htm":  TextHTML,
	"css":  TextCSS,
	"js":   ApplicationJavaScript,
	"json": ApplicationJSON,
	"png":  ImagePNG,
	"ico":  ImageIcon,
	"wasm": ApplicationWasm,
	"txt":  TextPlain,
	"xml":  ApplicationXML,
	"jpg":  ImageJPEG,
	"jpeg": ImageJPEG,
	"webp": ImageWebP,
	"aac":  AudioAAC,
	"mp3":  AudioMPEG,
	"ogg":  AudioOGG,
	"mpeg": VideoMPEG,
	"mp4":  VideoMP4,
	"webm": VideoWebM,
}

// MediaType returns the canonical media type string written in the
// Content-Type header. Unknown types are labelled "*/*".
func (c ContentType) MediaType() string {
	if s, ok := mediaTypes[c]; ok {
		return s
	}
	return mediaTypes[ContentTypeUnknown]
}

// String implements fmt.Stringer.
func (c ContentType) String() string {
	return c.MediaType()
}

// IsText reports whether files of this type are served as text.
func (c ContentType) IsText() bool {
	switch c {
	case TextHTML, TextCSS, ApplicationJavaScript, ApplicationJSON:
		return true
	default:
		return false
	}
}

// ParseContentType maps a media type string to a [ContentType].
// Parameters such as "; charset=utf-8" are ignored.
func ParseContentType(s string) ContentType {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	s = strings.ToLower(strings.TrimSpace(s))

	if c, ok := aliases[s]; ok {
		return c
	}
	for c, name := range mediaTypes {
		if name == s && c != ContentTypeUnknown {
			return c
		}
	}
	return ContentTypeUnknown
}

// GuessContentType guesses a content type from the extension of p.
// Paths without a known extension yield [ContentTypeUnknown].
func GuessContentType(p string) ContentType {
	ext := path.Ext(p)
	if ext == "" {
		return ContentTypeUnknown
	}
	if c, ok := extensions[strings.ToLower(ext[1:])]; ok {
		return c
	}
	return ContentTypeUnknown
}
