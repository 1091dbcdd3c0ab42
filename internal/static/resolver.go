package static

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jpalmerr/httpie/proto"
	"github.com/patrickmn/go-cache"
)

// IndexFile is served for the root path "/".
const IndexFile = "index.html"

var (
	// ErrNotFound means the path does not name a regular file under the root.
	ErrNotFound = errors.New("static: not found")

	// ErrRead means the file exists but could not be read, or a text file
	// is not valid UTF-8.
	ErrRead = errors.New("static: read failed")
)

// File is the content of a resolved static file.
type File struct {
	// Name is the slash-separated path relative to the root.
	Name string

	// ContentType is guessed from the file extension.
	ContentType proto.ContentType

	// Text is set for types served as text; Data then holds valid UTF-8.
	Text bool

	Data []byte
}

// Resolver serves files from a single directory tree. It is safe for
// concurrent use.
type Resolver struct {
	root  string
	fsys  fs.FS
	cache *cache.Cache
}

// NewResolver creates a [Resolver] rooted at dir.
//
// A positive cacheTTL keeps file contents in memory for that long; zero
// disables caching so every request reads from disk.
func NewResolver(dir string, cacheTTL time.Duration) *Resolver {
	return newResolver(dir, os.DirFS(dir), cacheTTL)
}

// NewResolverFS creates a [Resolver] over an arbitrary filesystem. root is
// only used for logging.
func NewResolverFS(root string, fsys fs.FS, cacheTTL time.Duration) *Resolver {
	return newResolver(root, fsys, cacheTTL)
}

func newResolver(root string, fsys fs.FS, cacheTTL time.Duration) *Resolver {
	r := &Resolver{root: root, fsys: fsys}
	if cacheTTL > 0 {
		r.cache = cache.New(cacheTTL, 2*cacheTTL)
	}
	return r
}

// Root returns the directory the resolver serves from.
func (r *Resolver) Root() string {
	return r.root
}

// Name maps a request path to a file name relative to the root.
//
// "/" maps to [IndexFile]. Otherwise exactly one leading slash is stripped.
// The result is rejected with ok=false when it is not a valid [fs.ValidPath]
// name, which excludes ".." and "." segments, empty segments and trailing
// slashes.
func Name(requestPath string) (name string, ok bool) {
	if requestPath == "/" {
		return IndexFile, true
	}
	name = strings.TrimPrefix(requestPath, "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}

// Resolve looks up the file for a request path.
//
// Returns [ErrNotFound] when the path is rejected or does not name a regular
// file, and an error wrapping [ErrRead] when reading fails.
func (r *Resolver) Resolve(requestPath string) (File, error) {
	name, ok := Name(requestPath)
	if !ok {
		return File{}, ErrNotFound
	}

	if r.cache != nil {
		if v, found := r.cache.Get(name); found {
			return v.(File), nil
		}
	}

	f, err := r.load(name)
	if err != nil {
		return File{}, err
	}

	if r.cache != nil {
		r.cache.SetDefault(name, f)
	}
	return f, nil
}

func (r *Resolver) load(name string) (File, error) {
	info, err := fs.Stat(r.fsys, name)
	if err != nil || !info.Mode().IsRegular() {
		return File{}, ErrNotFound
	}

	ct := proto.GuessContentType(name)
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return File{}, fmt.Errorf("%w: %s: %v", ErrRead, name, err)
	}

	text := ct.IsText()
	if text && !utf8.Valid(data) {
		return File{}, fmt.Errorf("%w: %s: invalid UTF-8", ErrRead, name)
	}

	return File{
		Name:        name,
		ContentType: ct,
		Text:        text,
		Data:        data,
	}, nil
}
