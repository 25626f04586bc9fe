// Package frame splits a byte stream into length prefixed messages.
//
// A frame consists of the payload length as 32 bit unsigned integer in big
// endian byte order followed by the payload. Framing errors are not
// recoverable: after an error, the stream position is unknown and the channel
// must be closed.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mdzio/go-logging"
)

const (
	// DefaultMaxSize is the max. size of a frame payload, if not specified: 2 MB
	DefaultMaxSize = 2 * 1024 * 1024

	headerSize = 4
)

var log = logging.Get("uaport-frame")

// Framing errors.
var (
	ErrTooLarge = errors.New("Frame exceeds size limit")
	ErrEmpty    = errors.New("Empty frame")
)

// Reader reads frames from a stream.
type Reader struct {
	r       io.Reader
	maxSize int
	header  [headerSize]byte
}

// NewReader creates a Reader. If maxSize is 0, DefaultMaxSize is used.
func NewReader(r io.Reader, maxSize int) *Reader {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Reader{r: r, maxSize: maxSize}
}

// ReadFrame reads exactly one frame and returns its payload. io.EOF is only
// returned, if the stream ends before the first byte of a frame.
func (fr *Reader) ReadFrame() ([]byte, error) {
	n, err := io.ReadFull(fr.r, fr.header[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("Reading of frame header failed: %w", io.ErrUnexpectedEOF)
	}
	size := binary.BigEndian.Uint32(fr.header[:])
	if size == 0 {
		return nil, ErrEmpty
	}
	if uint64(size) > uint64(fr.maxSize) {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLarge, size, fr.maxSize)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("Reading of frame payload failed: %w", err)
	}
	if log.TraceEnabled() {
		log.Tracef("Frame received: % X", payload)
	}
	return payload, nil
}

// Writer writes frames to a stream. It is safe for concurrent use: each frame
// is written with a single Write call while holding a lock, so frames of
// concurrent writers never interleave.
type Writer struct {
	mutex   sync.Mutex
	w       io.Writer
	maxSize int
}

// NewWriter creates a Writer. If maxSize is 0, DefaultMaxSize is used.
func NewWriter(w io.Writer, maxSize int) *Writer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Writer{w: w, maxSize: maxSize}
}

// MaxSize returns the max. size of a frame payload.
func (fw *Writer) MaxSize() int {
	return fw.maxSize
}

// WriteFrame writes the payload with its length prefix.
func (fw *Writer) WriteFrame(payload []byte) error {
	if len(payload) == 0 {
		return ErrEmpty
	}
	if len(payload) > fw.maxSize {
		return fmt.Errorf("%w: %d > %d", ErrTooLarge, len(payload), fw.maxSize)
	}
	buf := make([]byte, headerSize+len(payload))
	binary.BigEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[headerSize:], payload)

	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	if log.TraceEnabled() {
		log.Tracef("Sending frame: % X", payload)
	}
	if _, err := fw.w.Write(buf); err != nil {
		return fmt.Errorf("Writing of frame failed: %w", err)
	}
	return nil
}
