package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterNotifierFormatsLine(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.Notify(context.Background(), Notification{
		Level:       LevelSuccess,
		Title:       "Order placed",
		Description: "Thank you for your order!",
	})

	assert.Equal(t, "[success] Order placed: Thank you for your order!\n", buf.String())
}

func TestWriterNotifierOmitsEmptyDescription(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)

	n.Notify(context.Background(), Notification{Level: LevelWarning, Title: "Your cart is empty"})

	assert.Equal(t, "[warning] Your cart is empty\n", buf.String())
}

func TestRecorderLast(t *testing.T) {
	r := &Recorder{}

	_, ok := r.Last()
	assert.False(t, ok)

	r.Notify(context.Background(), Notification{Level: LevelError, Title: "first"})
	r.Notify(context.Background(), Notification{Level: LevelSuccess, Title: "second"})

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "second", last.Title)
}
