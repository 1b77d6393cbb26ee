package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlockingReader_ReadLine(t *testing.T) {
	r := NewNonBlockingReader(strings.NewReader("  hello  \nworld\n"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	line, err = r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "world", line)
}

func TestNonBlockingReader_CancelledContext(t *testing.T) {
	// A reader that never delivers a line.
	blocked, _ := newBlockedReader()
	r := NewNonBlockingReader(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.ReadLine(ctx)
	assert.ErrorIs(t, err, ErrInputCancelled)
}

func TestNewNonBlockingReader_NilPanics(t *testing.T) {
	assert.Panics(t, func() { NewNonBlockingReader(nil) })
}

// newBlockedReader returns a reader whose Read blocks forever.
func newBlockedReader() (*blockedReader, chan struct{}) {
	ch := make(chan struct{})
	return &blockedReader{ch: ch}, ch
}

type blockedReader struct {
	ch chan struct{}
}

func (b *blockedReader) Read([]byte) (int, error) {
	<-b.ch
	return 0, nil
}
