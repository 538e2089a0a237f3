package events

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestNewDeletedEvent(t *testing.T) {
	ev := NewDeletedEvent("azure", "https://acct.blob.core.windows.net/catalog/151349/")
	assert.NotEqual(t, uuid.Nil, ev.ID)
	assert.Equal(t, "azure", ev.Backend)
	assert.Equal(t, "https://acct.blob.core.windows.net/catalog/151349/", ev.URL)
	assert.False(t, ev.At.IsZero())

	other := NewDeletedEvent("azure", "https://acct.blob.core.windows.net/catalog/")
	assert.NotEqual(t, ev.ID, other.ID)
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	ev := NewDeletedEvent("memory", "https://example.com/catalog/a.txt")
	require.NoError(t, rec.Publish(context.Background(), ev))

	got := rec.Events()
	require.Len(t, got, 1)
	assert.Equal(t, ev.ID, got[0].ID)
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(zaptest.NewLogger(t))
	ev := NewDeletedEvent("azure", "https://example.com/catalog/a.txt")
	assert.NoError(t, p.Publish(context.Background(), ev))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), DeletedEvent{}))
}
