package stream

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fakeStream 在内存中模拟一个 Stream 和一个消费者组
type fakeStream struct {
	messages []redis.XMessage
	acked    []string
	groupErr error
	addErr   error
}

func (f *fakeStream) XAdd(_ context.Context, a *redis.XAddArgs) *redis.StringCmd {
	if f.addErr != nil {
		return redis.NewStringResult("", f.addErr)
	}
	values := make(map[string]interface{})
	for k, v := range a.Values.(map[string]interface{}) {
		values[k] = v
	}
	id := fmt.Sprintf("1-%d", len(f.messages))
	f.messages = append(f.messages, redis.XMessage{ID: id, Values: values})
	return redis.NewStringResult(id, nil)
}

func (f *fakeStream) XGroupCreateMkStream(context.Context, string, string, string) *redis.StatusCmd {
	return redis.NewStatusResult("OK", f.groupErr)
}

func (f *fakeStream) XReadGroup(context.Context, *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	if len(f.messages) == 0 {
		return redis.NewXStreamSliceCmdResult(nil, redis.Nil)
	}
	msg := f.messages[0]
	f.messages = f.messages[1:]
	return redis.NewXStreamSliceCmdResult([]redis.XStream{{Stream: StreamName, Messages: []redis.XMessage{msg}}}, nil)
}

func (f *fakeStream) XAck(_ context.Context, _, _ string, ids ...string) *redis.IntCmd {
	f.acked = append(f.acked, ids...)
	return redis.NewIntResult(int64(len(ids)), nil)
}

func TestPublishThenRead(t *testing.T) {
	ctx := context.Background()
	q := NewQueue(&fakeStream{})
	station := uuid.New()
	sent := reading.New(station, reading.Measurement{Temperature: 56, Humidity: 53, Pressure: 13})

	id, err := q.Publish(ctx, sent)
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	msgID, got, err := q.Read(ctx, "worker-1")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if msgID != id {
		t.Errorf("message ID = %q, want %q", msgID, id)
	}
	if got.ID != sent.ID || got.StationID != station || got.Measurement != sent.Measurement {
		t.Errorf("Read() = %+v, want %+v", got, sent)
	}
}

func TestReadAcksBadPayload(t *testing.T) {
	fs := &fakeStream{messages: []redis.XMessage{{ID: "1-0", Values: map[string]interface{}{"payload": "{not json"}}}}
	q := NewQueue(fs)

	msgID, r, err := q.Read(context.Background(), "worker-1")
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("Read() error = %v, want ErrBadPayload", err)
	}
	if r != nil || msgID != "1-0" {
		t.Errorf("Read() = %q, %+v", msgID, r)
	}
	if len(fs.acked) != 1 || fs.acked[0] != "1-0" {
		t.Errorf("acked = %v, want [1-0]", fs.acked)
	}
}

func TestPublishError(t *testing.T) {
	q := NewQueue(&fakeStream{addErr: errors.New("READONLY")})
	if _, err := q.Publish(context.Background(), reading.New(uuid.New(), reading.Measurement{})); err == nil {
		t.Fatal("Publish() error = nil, want error")
	}
}

func TestEnsureGroup(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"created", nil, false},
		{"already exists", errors.New("BUSYGROUP Consumer Group name already exists"), false},
		{"other error", errors.New("NOAUTH Authentication required"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewQueue(&fakeStream{groupErr: tt.err}).EnsureGroup(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("EnsureGroup() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
