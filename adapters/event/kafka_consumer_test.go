package event

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-api/pkg/logger"
)

// fakeReader hands out a single partition in order and tracks the group
// offset the way a consumer group does: a commit of offset N moves it to N+1.
type fakeReader struct {
	queue       []kafka.Message
	next        int
	groupOffset int64
	committed   []int64
	cancel      context.CancelFunc
}

func newFakeReader(cancel context.CancelFunc, values ...string) *fakeReader {
	r := &fakeReader{cancel: cancel}
	for i, v := range values {
		r.queue = append(r.queue, kafka.Message{Topic: "t", Offset: int64(i), Key: []byte(fmt.Sprint(i)), Value: []byte(v)})
	}
	return r
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if f.next >= len(f.queue) {
		f.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := f.queue[f.next]
	f.next++
	return msg, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, m := range msgs {
		f.committed = append(f.committed, m.Offset)
		if m.Offset+1 > f.groupOffset {
			f.groupOffset = m.Offset + 1
		}
	}
	return nil
}

type payload struct {
	N int `json:"n"`
}

var fastBackoff = Backoff{Initial: time.Millisecond, Max: 4 * time.Millisecond}

func TestConsumeRetriesFailingMessageBeforeMovingOn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newFakeReader(cancel,
		`{"n":1}`,
		`{not json`,
		`{"n":2}`,
		`{"n":3}`,
	)

	var seen []int
	failures := 0
	err := Consume(ctx, r, logger.NewNop(), fastBackoff, func(_ context.Context, p payload) error {
		seen = append(seen, p.N)
		switch p.N {
		case 2:
			if failures < 2 {
				failures++
				return errors.New("transient")
			}
		case 3:
			return fmt.Errorf("bad handle: %w", ErrSkip)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 2, 3}, seen)
	assert.Equal(t, []int64{0, 1, 2, 3}, r.committed)
	assert.Equal(t, int64(4), r.groupOffset)
}

func TestConsumeNeverCommitsPastUnprocessedMessage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := newFakeReader(cancel,
		`{"n":1}`,
		`{"n":2}`,
		`{"n":3}`,
	)

	attempts := 0
	var seen []int
	err := Consume(ctx, r, logger.NewNop(), fastBackoff, func(_ context.Context, p payload) error {
		seen = append(seen, p.N)
		if p.N == 2 {
			attempts++
			if attempts == 5 {
				cancel()
			}
			return errors.New("media store down")
		}
		return nil
	})

	require.NoError(t, err)
	assert.NotContains(t, seen, 3)
	assert.Equal(t, []int64{0}, r.committed)
	assert.Equal(t, int64(1), r.groupOffset, "group must resume at the failed message")
}

func TestBackoffDoublesUpToMax(t *testing.T) {
	b := Backoff{Initial: time.Second, Max: 5 * time.Second}
	d := b.next(0)
	assert.Equal(t, time.Second, d)
	d = b.next(d)
	assert.Equal(t, 2*time.Second, d)
	d = b.next(d)
	assert.Equal(t, 4*time.Second, d)
	assert.Equal(t, 5*time.Second, b.next(d))
}
