package blob

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// DefaultSegmentSize is the number of blob bytes stored per pebble value.
const DefaultSegmentSize = 64 * 1024

// StoreConfig holds configuration for the blob store
type StoreConfig struct {
	Path        string // Directory for the pebble database
	SegmentSize int    // Blob bytes per stored segment (0 = DefaultSegmentSize)
}

// Store keeps blobs in a pebble database, split into fixed-size segments so
// chunk reads never load a whole blob. Each blob is named by a KSUID.
type Store struct {
	db          *pebble.DB
	segmentSize int
}

// OpenStore opens (creating if necessary) a blob store at the configured path
func OpenStore(config StoreConfig) (*Store, error) {
	segmentSize := config.SegmentSize
	if segmentSize == 0 {
		segmentSize = DefaultSegmentSize
	}
	if segmentSize < 0 {
		return nil, fmt.Errorf("open store: segment size must be positive, got %d", segmentSize)
	}

	db, err := pebble.Open(config.Path, &pebble.Options{})
	if err != nil {
		return nil, err
	}

	return &Store{db: db, segmentSize: segmentSize}, nil
}

// metaKey is 'm' + the 20-byte KSUID.
func metaKey(id ksuid.KSUID) []byte {
	return append([]byte{'m'}, id.Bytes()...)
}

// segmentKey is 's' + the 20-byte KSUID + the big-endian segment index, so
// segments of one blob iterate in order.
func segmentKey(id ksuid.KSUID, index uint64) []byte {
	key := make([]byte, 0, 29)
	key = append(key, 's')
	key = append(key, id.Bytes()...)
	key = binary.BigEndian.AppendUint64(key, index)
	return key
}

// Put stores a blob and returns its assigned identifier
func (s *Store) Put(data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()

	batch := s.db.NewBatch()
	defer batch.Close()

	for index, offset := uint64(0), 0; offset < len(data); index++ {
		end := offset + s.segmentSize
		if end > len(data) {
			end = len(data)
		}
		if err := batch.Set(segmentKey(id, index), data[offset:end], nil); err != nil {
			return ksuid.Nil, err
		}
		offset = end
	}

	// Meta value: total length followed by the segment size used at write
	// time, so the blob stays readable if the store is reopened with a
	// different configured segment size.
	meta := make([]byte, 16)
	binary.BigEndian.PutUint64(meta[0:8], uint64(len(data)))
	binary.BigEndian.PutUint64(meta[8:16], uint64(s.segmentSize))
	if err := batch.Set(metaKey(id), meta, nil); err != nil {
		return ksuid.Nil, err
	}

	if err := s.db.Apply(batch, pebble.Sync); err != nil {
		return ksuid.Nil, err
	}

	return id, nil
}

// Source opens a read source over a stored blob
func (s *Store) Source(id ksuid.KSUID) (*StoreSource, error) {
	length, segmentSize, err := s.meta(id)
	if err != nil {
		return nil, err
	}

	return &StoreSource{
		db:          s.db,
		id:          id,
		length:      length,
		segmentSize: segmentSize,
	}, nil
}

// Delete removes a stored blob and its segments
func (s *Store) Delete(id ksuid.KSUID) error {
	length, segmentSize, err := s.meta(id)
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	defer batch.Close()

	segments := (length + segmentSize - 1) / segmentSize
	for index := int64(0); index < segments; index++ {
		if err := batch.Delete(segmentKey(id, uint64(index)), nil); err != nil {
			return err
		}
	}
	if err := batch.Delete(metaKey(id), nil); err != nil {
		return err
	}

	return s.db.Apply(batch, pebble.Sync)
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) meta(id ksuid.KSUID) (length, segmentSize int64, err error) {
	meta, closer, err := s.db.Get(metaKey(id))
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return 0, 0, fmt.Errorf("blob %s: %w", id, ErrBlobNotFound)
		}
		return 0, 0, err
	}
	defer closer.Close()

	if len(meta) != 16 {
		return 0, 0, fmt.Errorf("blob %s: corrupt meta record (%d bytes)", id, len(meta))
	}

	length = int64(binary.BigEndian.Uint64(meta[0:8]))
	segmentSize = int64(binary.BigEndian.Uint64(meta[8:16]))
	if segmentSize <= 0 {
		return 0, 0, fmt.Errorf("blob %s: corrupt meta record (segment size %d)", id, segmentSize)
	}

	return length, segmentSize, nil
}

// StoreSource implements Source over a blob held in a Store.
type StoreSource struct {
	db          *pebble.DB
	id          ksuid.KSUID
	length      int64
	segmentSize int64
}

// ID returns the blob identifier
func (s *StoreSource) ID() ksuid.KSUID {
	return s.id
}

// Length returns the total blob size in bytes
func (s *StoreSource) Length() int64 {
	return s.length
}

// ReadChunk reads at most maxLen bytes starting at offset, gathering across
// stored segments as needed
func (s *StoreSource) ReadChunk(offset int64, maxLen int) ([]byte, error) {
	if offset < 0 || maxLen < 0 {
		return nil, fmt.Errorf("read chunk: negative offset or length")
	}
	if offset >= s.length {
		return nil, io.EOF
	}

	end := offset + int64(maxLen)
	if end > s.length {
		end = s.length
	}

	out := make([]byte, 0, end-offset)
	for pos := offset; pos < end; {
		index := uint64(pos / s.segmentSize)
		segOffset := pos % s.segmentSize

		value, closer, err := s.db.Get(segmentKey(s.id, index))
		if err != nil {
			return nil, fmt.Errorf("blob %s: segment %d: %w", s.id, index, err)
		}

		take := int64(len(value)) - segOffset
		if take > end-pos {
			take = end - pos
		}
		if take <= 0 {
			closer.Close()
			return nil, fmt.Errorf("blob %s: segment %d shorter than expected", s.id, index)
		}

		out = append(out, value[segOffset:segOffset+take]...)
		if err := closer.Close(); err != nil {
			return nil, err
		}
		pos += take
	}

	return out, nil
}
