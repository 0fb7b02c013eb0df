// Package blob provides read access to packed identifier blobs.
//
// A blob is an externally produced, already materialized byte sequence. The
// Source interface exposes the two operations the scanner needs: the total
// length and bounded random-access chunk reads. Sources never mutate the
// underlying data.
package blob

import (
	"fmt"
	"io"
	"os"
)

// Source provides bounded random-access reads over a blob.
type Source interface {
	// Length returns the total blob size in bytes.
	Length() int64

	// ReadChunk reads at most maxLen bytes starting at offset. Fewer bytes
	// are returned only at the end of the blob. Reading at or past the end
	// returns io.EOF.
	ReadChunk(offset int64, maxLen int) ([]byte, error)
}

// Errors
var (
	ErrBlobNotFound = &BlobError{"blob not found"}
)

// BlobError represents a blob access error
type BlobError struct {
	Message string
}

func (e *BlobError) Error() string {
	return e.Message
}

// BytesSource serves a blob held in memory. The returned chunks alias the
// underlying slice; callers must not modify them.
type BytesSource struct {
	data []byte
}

// NewBytesSource creates a source over an in-memory blob
func NewBytesSource(data []byte) *BytesSource {
	return &BytesSource{data: data}
}

// Length returns the total blob size in bytes
func (s *BytesSource) Length() int64 {
	return int64(len(s.data))
}

// ReadChunk reads at most maxLen bytes starting at offset
func (s *BytesSource) ReadChunk(offset int64, maxLen int) ([]byte, error) {
	if offset < 0 || maxLen < 0 {
		return nil, fmt.Errorf("read chunk: negative offset or length")
	}
	if offset >= int64(len(s.data)) {
		return nil, io.EOF
	}

	end := offset + int64(maxLen)
	if end > int64(len(s.data)) {
		end = int64(len(s.data))
	}

	return s.data[offset:end], nil
}

// FileSource serves a blob stored in a regular file. The size is captured
// when the source is opened; the file is assumed static for the lifetime of
// the source.
type FileSource struct {
	file *os.File
	size int64
}

// OpenFileSource opens a file-backed blob source
func OpenFileSource(path string) (*FileSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &FileSource{
		file: file,
		size: stat.Size(),
	}, nil
}

// Length returns the total blob size in bytes
func (s *FileSource) Length() int64 {
	return s.size
}

// ReadChunk reads at most maxLen bytes starting at offset
func (s *FileSource) ReadChunk(offset int64, maxLen int) ([]byte, error) {
	if offset < 0 || maxLen < 0 {
		return nil, fmt.Errorf("read chunk: negative offset or length")
	}
	if offset >= s.size {
		return nil, io.EOF
	}

	want := int64(maxLen)
	if offset+want > s.size {
		want = s.size - offset
	}

	buf := make([]byte, want)
	n, err := s.file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if int64(n) < want {
		return nil, fmt.Errorf("read chunk: short read at offset %d: got %d bytes, want %d", offset, n, want)
	}

	return buf, nil
}

// Close closes the underlying file
func (s *FileSource) Close() error {
	return s.file.Close()
}
