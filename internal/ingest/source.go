package ingest

import (
	"bytes"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Source is an uploaded file as the ingestor sees it.
type Source interface {
	Name() string
	ContentType() string
	Size() int64
	Open() (io.ReadCloser, error)
}

type multipartSource struct {
	header *multipart.FileHeader
}

func FromMultipart(header *multipart.FileHeader) Source {
	return &multipartSource{header: header}
}

func (m *multipartSource) Name() string        { return m.header.Filename }
func (m *multipartSource) ContentType() string { return m.header.Header.Get("Content-Type") }
func (m *multipartSource) Size() int64         { return m.header.Size }

func (m *multipartSource) Open() (io.ReadCloser, error) {
	return m.header.Open()
}

type bytesSource struct {
	name        string
	contentType string
	data        []byte
}

func FromBytes(name, contentType string, data []byte) Source {
	return &bytesSource{name: name, contentType: contentType, data: data}
}

func (b *bytesSource) Name() string        { return b.name }
func (b *bytesSource) ContentType() string { return b.contentType }
func (b *bytesSource) Size() int64         { return int64(len(b.data)) }

func (b *bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

type fileSource struct {
	path string
	info os.FileInfo
}

// FromPath opens nothing until Open is called; the content type is left empty so the
// extension decides.
func FromPath(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileSource{path: path, info: info}, nil
}

func (f *fileSource) Name() string        { return filepath.Base(f.path) }
func (f *fileSource) ContentType() string { return "" }
func (f *fileSource) Size() int64         { return f.info.Size() }

func (f *fileSource) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
