package form

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
)

// ImageSource is an image file chosen by the user. ContentType is the type
// the client or file name claims, used only when the bytes are not
// recognized. It may be empty.
type ImageSource interface {
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

type fileHeader struct {
	fh *multipart.FileHeader
}

// FromFileHeader wraps an uploaded multipart file. A nil header yields a
// nil source.
func FromFileHeader(fh *multipart.FileHeader) ImageSource {
	if fh == nil {
		return nil
	}
	return fileHeader{fh: fh}
}

func (f fileHeader) Size() int64 { return f.fh.Size }

func (f fileHeader) ContentType() string {
	if ct := f.fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return mime.TypeByExtension(filepath.Ext(f.fh.Filename))
}

func (f fileHeader) Open() (io.ReadCloser, error) { return f.fh.Open() }

type localFile struct {
	path string
	size int64
}

// FromPath wraps a file on disk. An empty path yields a nil source. Errors
// are reported by Open.
func FromPath(path string) ImageSource {
	if path == "" {
		return nil
	}
	lf := localFile{path: path}
	if fi, err := os.Stat(path); err == nil {
		lf.size = fi.Size()
	}
	return lf
}

func (f localFile) Size() int64 { return f.size }

func (f localFile) ContentType() string { return mime.TypeByExtension(filepath.Ext(f.path)) }

func (f localFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

type byteSource struct {
	data        []byte
	contentType string
}

// FromBytes wraps image bytes already in memory. Empty data yields a nil
// source.
func FromBytes(data []byte, contentType string) ImageSource {
	if len(data) == 0 {
		return nil
	}
	return byteSource{data: data, contentType: contentType}
}

func (b byteSource) Size() int64 { return int64(len(b.data)) }

func (b byteSource) ContentType() string { return b.contentType }

func (b byteSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}
