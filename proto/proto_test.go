package proto

import "testing"

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
	}{
		{"GET", MethodGet},
		{"POST", MethodPost},
		{"PUT", MethodPut},
		{"get", MethodUnknown},
		{"DELETE", MethodUnknown},
		{"", MethodUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseMethod(tt.in); got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMethod_String(t *testing.T) {
	if got := MethodPut.String(); got != "PUT" {
		t.Errorf("MethodPut.String() = %q, want %q", got, "PUT")
	}
	if got := Method(42).String(); got != "Unknown" {
		t.Errorf("Method(42).String() = %q, want %q", got, "Unknown")
	}
}

func TestParseProtocol(t *testing.T) {
	tests := []struct {
		in   string
		want Protocol
	}{
		{"HTTP/1.0", ProtocolV10},
		{"HTTP/1.1", ProtocolV11},
		{"HTTP 1.1", ProtocolV11},
		{"HTTP/2", ProtocolV20},
		{"HTTP/3.0", ProtocolV30},
		{"HTTP/9.9", ProtocolUnknown},
		{"", ProtocolUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseProtocol(tt.in); got != tt.want {
				t.Errorf("ParseProtocol(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestProtocol_RoundTripsLabel(t *testing.T) {
	for _, p := range []Protocol{ProtocolV10, ProtocolV11, ProtocolV20, ProtocolV30} {
		if got := ParseProtocol(p.String()); got != p {
			t.Errorf("ParseProtocol(%q) = %v, want %v", p.String(), got, p)
		}
	}
}

func TestGuessContentType(t *testing.T) {
	tests := []struct {
		path string
		want ContentType
	}{
		{"www/index.html", TextHTML},
		{"style.css", TextCSS},
		{"app.js", ApplicationJavaScript},
		{"data.json", ApplicationJSON},
		{"logo.PNG", ImagePNG},
		{"photo.jpeg", ImageJPEG},
		{"favicon.ico", ImageIcon},
		{"clip.webm", VideoWebM},
		{"song.mp3", AudioMPEG},
		{"README", ContentTypeUnknown},
		{"archive.tar.gz", ContentTypeUnknown},
		{"dir.d/file", ContentTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := GuessContentType(tt.path); got != tt.want {
				t.Errorf("GuessContentType(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestContentType_IsText(t *testing.T) {
	text := []ContentType{TextHTML, TextCSS, ApplicationJavaScript, ApplicationJSON}
	for _, c := range text {
		if !c.IsText() {
			t.Errorf("%v.IsText() = false, want true", c)
		}
	}

	binary := []ContentType{TextPlain, ImagePNG, ApplicationWasm, ContentTypeUnknown}
	for _, c := range binary {
		if c.IsText() {
			t.Errorf("%v.IsText() = true, want false", c)
		}
	}
}

func TestParseContentType(t *testing.T) {
	tests := []struct {
		in   string
		want ContentType
	}{
		{"text/html", TextHTML},
		{"text/html; charset=utf-8", TextHTML},
		{"APPLICATION/JSON", ApplicationJSON},
		{"text/javascript", ApplicationJavaScript},
		{"text/xml", ApplicationXML},
		{"*/*", ContentTypeUnknown},
		{"application/x-nope", ContentTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseContentType(tt.in); got != tt.want {
				t.Errorf("ParseContentType(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestContentType_MediaTypeRoundTrip(t *testing.T) {
	for c := TextPlain; c <= VideoWebM; c++ {
		if got := ParseContentType(c.MediaType()); got != c {
			t.Errorf("ParseContentType(%q) = %v, want %v", c.MediaType(), got, c)
		}
	}
	if got := ContentType(999).MediaType(); got != "*/*" {
		t.Errorf("ContentType(999).MediaType() = %q, want %q", got, "*/*")
	}
}

func TestStatusCode_String(t *testing.T) {
	tests := []struct {
		code StatusCode
		want string
	}{
		{StatusOK, "200 OK"},
		{StatusNotFound, "404 Not Found"},
		{StatusInternalServerError, "500 Internal Server Error"},
		{StatusServiceUnavailable, "503 Service Unavailable"},
		{StatusUnknown, "Unknown"},
		{StatusCode(299), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.String(); got != tt.want {
				t.Errorf("StatusCode(%d).String() = %q, want %q", int(tt.code), got, tt.want)
			}
		})
	}
}

func TestParseStatusCode(t *testing.T) {
	tests := []struct {
		in   string
		want StatusCode
	}{
		{"200 OK", StatusOK},
		{"404 not found", StatusNotFound},
		{"503", StatusServiceUnavailable},
		{"404 Gone", StatusUnknown},
		{"299", StatusUnknown},
		{"OK", StatusUnknown},
		{"", StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseStatusCode(tt.in); got != tt.want {
				t.Errorf("ParseStatusCode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStatusCode_Code(t *testing.T) {
	if got := StatusNotFound.Code(); got != 404 {
		t.Errorf("StatusNotFound.Code() = %d, want 404", got)
	}
	if got := StatusCode(999).Code(); got != 0 {
		t.Errorf("StatusCode(999).Code() = %d, want 0", got)
	}
}
