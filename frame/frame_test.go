package frame

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mdzio/go-lib/testutil"
)

func TestWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)
	require.NoError(t, w.WriteFrame([]byte("abc")))
	assert.Equal(t, strings.ReplaceAll("00 00 00 03 61 62 63", " ", ""), hex.EncodeToString(buf.Bytes()))
}

func TestReadFrames(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 0)
	msgs := [][]byte{{1}, bytes.Repeat([]byte{2}, 1000), []byte("last")}
	for _, m := range msgs {
		require.NoError(t, w.WriteFrame(m))
	}
	r := NewReader(&buf, 0)
	for _, m := range msgs {
		p, err := r.ReadFrame()
		require.NoError(t, err)
		assert.Equal(t, m, p)
	}
	_, err := r.ReadFrame()
	assert.Equal(t, io.EOF, err)
}

func TestReadFrameErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"truncated header", "00 00", io.ErrUnexpectedEOF},
		{"truncated payload", "00 00 00 04 01 02", io.ErrUnexpectedEOF},
		{"too large", "00 00 01 00 00", ErrTooLarge},
		{"empty", "00 00 00 00", ErrEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := hex.DecodeString(strings.ReplaceAll(tt.in, " ", ""))
			r := NewReader(bytes.NewReader(b), 16)
			_, err := r.ReadFrame()
			assert.True(t, errors.Is(err, tt.want), "%v", err)
		})
	}
}

func TestWriteFrameTooLarge(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 4)
	assert.Equal(t, 4, w.MaxSize())
	assert.Equal(t, DefaultMaxSize, NewWriter(&buf, 0).MaxSize())
	err := w.WriteFrame([]byte("12345"))
	assert.True(t, errors.Is(err, ErrTooLarge))
	assert.Equal(t, 0, buf.Len())
	assert.True(t, errors.Is(w.WriteFrame(nil), ErrEmpty))
}

// chunkWriter forwards every write in single byte chunks, so that interleaved
// writes would be detected.
type chunkWriter struct {
	mutex sync.Mutex
	buf   bytes.Buffer
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	for _, b := range p {
		c.mutex.Lock()
		c.buf.WriteByte(b)
		c.mutex.Unlock()
	}
	return len(p), nil
}

func TestConcurrentWriters(t *testing.T) {
	cw := &chunkWriter{}
	w := NewWriter(cw, 0)
	const writers, frames = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(id byte) {
			defer wg.Done()
			for j := 0; j < frames; j++ {
				assert.NoError(t, w.WriteFrame(bytes.Repeat([]byte{id}, 100)))
			}
		}(byte(i + 1))
	}
	wg.Wait()

	r := NewReader(&cw.buf, 0)
	for i := 0; i < writers*frames; i++ {
		p, err := r.ReadFrame()
		require.NoError(t, err)
		require.Len(t, p, 100)
		// all bytes of a frame come from the same writer
		assert.Equal(t, bytes.Repeat(p[:1], 100), p)
	}
}
