// Package scan walks a packed identifier blob in bounded-size chunks,
// splits each chunk into fixed-width records, decodes every record, and
// emits (ordinal, identifier) pairs in blob order.
package scan

import (
	"fmt"
	"time"

	"github.com/kvalheim/rowscan/pkg/blob"
	"github.com/kvalheim/rowscan/pkg/rowid"
	"github.com/segmentio/ksuid"
)

// DefaultChunkSize is the number of bytes read per chunk: 100 records.
const DefaultChunkSize = 100 * rowid.RawSize

// Config holds configuration for a scan
type Config struct {
	ChunkSize   int   // Bytes per chunk read (0 = DefaultChunkSize); must be a multiple of rowid.RawSize
	BaseOrdinal int64 // Ordinal assigned to the first emitted record
	StartOffset int64 // Byte offset to start scanning from
}

// Entry is one emitted (ordinal, identifier) pair
type Entry struct {
	Ordinal int64  `json:"ordinal"`
	ID      string `json:"id"`
}

// SourceReadError reports a chunk read that failed mid-scan.
type SourceReadError struct {
	Offset int64
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("read chunk at offset %d: %v", e.Offset, e.Err)
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Scanner walks a blob source and decodes the records it contains. A
// Scanner holds no mutable scan state; each call to Entries starts an
// independent pass.
type Scanner struct {
	source  blob.Source
	codec   *rowid.Codec
	config  Config
	metrics *Metrics
	id      ksuid.KSUID
}

// NewScanner creates a scanner over the given source. The chunk size must
// be a positive multiple of the record width so record slices never
// straddle chunk boundaries.
func NewScanner(source blob.Source, config Config) (*Scanner, error) {
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if config.ChunkSize < 0 || config.ChunkSize%rowid.RawSize != 0 {
		return nil, fmt.Errorf("scanner: chunk size %d must be a positive multiple of %d", config.ChunkSize, rowid.RawSize)
	}
	if config.StartOffset < 0 {
		return nil, fmt.Errorf("scanner: start offset %d must not be negative", config.StartOffset)
	}

	return &Scanner{
		source: source,
		codec:  rowid.NewCodec(),
		config: config,
		id:     ksuid.New(),
	}, nil
}

// ID returns the scanner's assigned identifier, used to label a scan in
// command output and diagnostics.
func (s *Scanner) ID() ksuid.KSUID {
	return s.id
}

// UseMetrics attaches metrics instrumentation to subsequent scans
func (s *Scanner) UseMetrics(m *Metrics) {
	s.metrics = m
}

// Entries returns a streaming iterator over the blob's records. The
// sequence is lazy, finite, and single-pass; emitted entries remain valid
// when a later read or decode fails.
func (s *Scanner) Entries() EntryIterator {
	return &entryIterator{
		scanner: s,
		offset:  s.config.StartOffset,
		ordinal: s.config.BaseOrdinal,
		started: time.Now(),
	}
}

// EntryIterator provides streaming access to scan entries
type EntryIterator interface {
	Next() bool
	Entry() Entry
	Err() error
	Close() error
}

// entryIterator implements EntryIterator for a single scan pass
type entryIterator struct {
	scanner  *Scanner
	offset   int64
	ordinal  int64
	chunk    []byte
	chunkPos int
	entry    Entry
	err      error
	done     bool
	closed   bool
	started  time.Time
}

func (it *entryIterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	s := it.scanner

	if it.chunkPos >= len(it.chunk) {
		if it.offset >= s.source.Length() {
			it.done = true
			return false
		}

		chunk, err := s.source.ReadChunk(it.offset, s.config.ChunkSize)
		if err != nil {
			it.err = &SourceReadError{Offset: it.offset, Err: err}
			return false
		}
		if len(chunk) == 0 {
			it.err = &SourceReadError{Offset: it.offset, Err: fmt.Errorf("empty read before end of blob")}
			return false
		}

		// Advance by the bytes actually read, not the configured chunk
		// size; the final chunk is usually short.
		it.offset += int64(len(chunk))
		it.chunk = chunk
		it.chunkPos = 0

		if s.metrics != nil {
			s.metrics.RecordChunkRead(len(chunk))
		}
	}

	if it.chunkPos+rowid.RawSize > len(it.chunk) {
		short := len(it.chunk) - it.chunkPos
		it.err = fmt.Errorf("partial record of %d bytes at offset %d: %w",
			short, it.offset-int64(short), rowid.ErrMalformedRecord)
		return false
	}

	id, err := s.codec.Decode(it.chunk[it.chunkPos : it.chunkPos+rowid.RawSize])
	if err != nil {
		it.err = err
		return false
	}

	it.entry = Entry{Ordinal: it.ordinal, ID: id}
	it.ordinal++
	it.chunkPos += rowid.RawSize

	if s.metrics != nil {
		s.metrics.RecordEntry()
	}

	return true
}

func (it *entryIterator) Entry() Entry {
	return it.entry
}

func (it *entryIterator) Err() error {
	return it.err
}

func (it *entryIterator) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	it.done = true

	if m := it.scanner.metrics; m != nil {
		m.RecordScan(it.err == nil, time.Since(it.started))
	}

	return nil
}
