// Package source opens the delimited text that a job data store is loaded from.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"techjobs/internal/core/types"
	"techjobs/internal/transport"

	"github.com/aws/aws-sdk-go/service/s3"
)

// ErrUnsupportedScheme is returned for locations no Source can read.
var ErrUnsupportedScheme = errors.New("unsupported source scheme")

// Info describes an opened source.
type Info struct {
	Size int64 // -1 when unknown
}

// Source yields a fresh stream of the dataset on every Open.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, Info, error)
	String() string
}

// New picks a Source for cfg.Location by URL scheme. Plain paths are files.
func New(cfg types.DataConfig) (Source, error) {
	loc := cfg.Location
	if loc == "" {
		return nil, fmt.Errorf("empty data location")
	}

	u, err := url.Parse(loc)
	if err != nil || u.Scheme == "" || isWindowsDrive(u.Scheme) {
		return NewFileSource(loc), nil
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return NewFileSource(u.Path), nil
	case "http", "https":
		return NewHTTPSource(loc, WithHTTPHeaders(cfg.Headers), WithHTTPToken(cfg.Token)), nil
	case "s3":
		sess, err := transport.NewS3Session(cfg.Region, cfg.Profile)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		src, err := NewS3Source(transport.NewS3Transfer(s3.New(sess)), u.Host, strings.TrimPrefix(u.Path, "/"))
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

func isWindowsDrive(scheme string) bool {
	return len(scheme) == 1
}

// FileSource reads a local file
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Open(ctx context.Context) (io.ReadCloser, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, Info{}, err
	}
	info := Info{Size: -1}
	if st, err := f.Stat(); err == nil {
		if st.IsDir() {
			f.Close()
			return nil, Info{}, fmt.Errorf("%s is a directory", s.path)
		}
		info.Size = st.Size()
	}
	return f, info, nil
}

func (s *FileSource) String() string {
	return s.path
}

// ReaderSource serves a fixed in-memory document. Mostly useful for tests and
// embedded datasets.
type ReaderSource struct {
	name string
	data string
}

func NewReaderSource(name, data string) *ReaderSource {
	return &ReaderSource{name: name, data: data}
}

func (s *ReaderSource) Open(ctx context.Context) (io.ReadCloser, Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, Info{}, err
	}
	return io.NopCloser(strings.NewReader(s.data)), Info{Size: int64(len(s.data))}, nil
}

func (s *ReaderSource) String() string {
	return s.name
}
