package kafka_test

import (
	"context"
	"sync"
	"testing"
	"time"

	segkafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gasagency-backoffice/internal/application/alerts"
	"github.com/jhoicas/gasagency-backoffice/internal/infrastructure/kafka"
)

// fakeReader entrega los mensajes en orden y luego bloquea hasta que ctx se cancela.
type fakeReader struct {
	mu        sync.Mutex
	msgs      []segkafka.Message
	committed []int64
	closed    bool
}

func (f *fakeReader) FetchMessage(ctx context.Context) (segkafka.Message, error) {
	f.mu.Lock()
	if len(f.msgs) > 0 {
		m := f.msgs[0]
		f.msgs = f.msgs[1:]
		f.mu.Unlock()
		return m, nil
	}
	f.mu.Unlock()
	<-ctx.Done()
	return segkafka.Message{}, ctx.Err()
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...segkafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
	}
	return nil
}

func (f *fakeReader) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeReader) commits() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.committed...)
}

func TestAlertConsumer_EmpujaAlFeedYConfirma(t *testing.T) {
	r := &fakeReader{msgs: []segkafka.Message{
		{Offset: 1, Value: []byte(`{"id":"1","type":"LOW_STOCK","createdAt":"2024-03-01T10:00:00Z"}`)},
		{Offset: 2, Value: []byte(`no es json`)},
		{Offset: 3, Value: []byte(`[{"id":"2","type":"OVERDUE","createdAt":"2024-03-01T11:00:00Z"},{"id":"1","type":"LOW_STOCK","createdAt":"2024-03-01T09:00:00Z"}]`)},
	}}
	feed := alerts.NewFeed(nil, 0, 10, nil)
	c := kafka.NewAlertConsumer(r, feed, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, func() bool { return len(r.commits()) == 3 }, time.Second, 5*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	assert.Equal(t, []int64{1, 2, 3}, r.commits(), "el mensaje ilegible también se confirma")
	assert.True(t, r.closed)

	got := feed.List(context.Background())
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].ID)
}

func TestDecode(t *testing.T) {
	_, err := kafka.Decode([]byte(`{"id":"1"}`))
	assert.Error(t, err, "alerta sin tipo")

	got, err := kafka.Decode([]byte(` [] `))
	require.NoError(t, err)
	assert.Empty(t, got)
}
