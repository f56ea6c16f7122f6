package persist

import (
	"bytes"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameEncodeDecodeHeader(t *testing.T) {
	payload := []byte("a sample event payload")
	frame := Frame{Payload: payload}.Encode()

	blobSize, crc, ok := DecodeHeader(frame)
	assert.True(t, ok)
	assert.Equal(t, uint32(len(payload)), blobSize)

	got := frame[HeaderSize : HeaderSize+int(blobSize)]
	assert.True(t, bytes.Equal(payload, got))
	assert.Equal(t, crc32.ChecksumIEEE(payload), crc)
}

func TestFrameSizeIsEightByteAligned(t *testing.T) {
	for _, size := range []uint32{0, 1, 7, 8, 9, 100} {
		total := FrameSize(size)
		assert.Equal(t, 0, (total-HeaderSize)%8)
		assert.True(t, total >= HeaderSize+int(size))
	}
}

func TestAppenderWritesReadableFrames(t *testing.T) {
	dir := t.TempDir()
	a, err := NewAppender(dir, 0)
	assert.NoError(t, err)
	defer a.Close()

	a.Append([][]byte{[]byte("first"), []byte("second")})

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	if assert.Len(t, entries, 1) {
		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		assert.NoError(t, err)
		blobSize, crc, ok := DecodeHeader(data)
		assert.True(t, ok)
		assert.Equal(t, uint32(len("first")), blobSize)
		assert.Equal(t, crc32.ChecksumIEEE([]byte("first")), crc)
		assert.Equal(t, FrameSize(5)+FrameSize(6), len(data))
	}
}
