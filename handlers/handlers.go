// Package handlers contains sample route handlers for httpie.
//
//   - [Echo]: describes the request it received as JSON
//   - [Cwd]: reports the server's working directory
package handlers

import (
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/jpalmerr/httpie"
	"github.com/jpalmerr/httpie/proto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// cwdError is returned as the body when the working directory is unavailable.
const cwdError = "Failed to get current working directory."

type echoParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type echoBody struct {
	Path          string      `json:"path"`
	Method        string      `json:"method"`
	ContentType   string      `json:"content-type"`
	Protocol      string      `json:"protocol"`
	Status        string      `json:"status"`
	Params        []echoParam `json:"params"`
	ContentLength int         `json:"content-length"`
	RemoteAddr    string      `json:"remote-addr,omitempty"`
}

// Echo answers with a JSON description of the request: path, method,
// content type, protocol, query parameters and declared body length. The
// status field is the echo's own status, always "200 OK".
func Echo(req httpie.Request) httpie.Response {
	params := make([]echoParam, len(req.Params))
	for i, p := range req.Params {
		params[i] = echoParam{Key: p.Key, Value: p.Value}
	}

	body, err := json.Marshal(echoBody{
		Path:          req.Path,
		Method:        req.Method.String(),
		ContentType:   req.ContentType.MediaType(),
		Protocol:      req.Protocol.String(),
		Status:        proto.StatusOK.String(),
		Params:        params,
		ContentLength: req.ContentLength,
		RemoteAddr:    req.RemoteAddr,
	})
	if err != nil {
		return httpie.ServerError()
	}

	return httpie.TextResponse(proto.StatusOK, proto.ApplicationJSON, string(body))
}

// Cwd answers with the server's working directory as plain text. If the
// directory cannot be determined the body is a fixed error message; the
// status stays 200.
func Cwd(httpie.Request) httpie.Response {
	resp := httpie.Response{
		Status:      proto.StatusOK,
		ContentType: proto.TextPlain,
	}

	dir, err := os.Getwd()
	if err != nil {
		resp.Body = httpie.Shared(cwdError)
		return resp
	}
	resp.Body = httpie.Text(dir)
	return resp
}

// Builtin maps the handler names accepted in configuration files to
// handlers.
var Builtin = map[string]httpie.Handler{
	"echo": Echo,
	"cwd":  Cwd,
}

// Names returns the keys of [Builtin] in sorted order.
func Names() []string {
	names := make([]string, 0, len(Builtin))
	for name := range Builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
