// internal/stream/queue.go
package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/redis/go-redis/v9"
)

const (
	// 测量上报使用的 Redis Stream 的键名
	StreamName = "weather_readings"
	// 消费者组的名称
	GroupName = "weather-group"
)

// ErrBadPayload 表示消息无法解析，已经被 ACK 掉，调用方直接跳过即可
var ErrBadPayload = errors.New("stream: undecodable reading payload")

// streamClient 是 Queue 用到的 Redis 命令，*redis.Client 满足这个接口
type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Queue 把测量上报投递到 Redis Stream，或从消费者组中读取
type Queue struct {
	rdb streamClient
}

// NewQueue 创建一个新的队列实例
func NewQueue(rdb streamClient) *Queue {
	return &Queue{rdb: rdb}
}

// Publish 投递一条上报，返回 Stream 消息 ID
func (q *Queue) Publish(ctx context.Context, r *reading.Reading) (string, error) {
	payload, err := r.Encode()
	if err != nil {
		return "", err
	}
	id, err := q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]interface{}{reading.PayloadField: payload},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("无法将测量上报发布到 Redis: %w", err)
	}
	return id, nil
}

// EnsureGroup 确保消费者组存在，如果不存在则创建
func (q *Queue) EnsureGroup(ctx context.Context) error {
	err := q.rdb.XGroupCreateMkStream(ctx, StreamName, GroupName, "$").Err()
	if err != nil {
		if strings.Contains(err.Error(), "BUSYGROUP") {
			log.Printf("消费者组 '%s' 已存在，无需创建。", GroupName)
			return nil
		}
		return fmt.Errorf("无法创建消费者组: %w", err)
	}
	log.Printf("成功创建消费者组 '%s' 并关联到 Stream '%s'。", GroupName, StreamName)
	return nil
}

// Read 阻塞式地读取一条从未被消费过的新上报。
// 解析失败的消息直接 ACK 并返回 ErrBadPayload，防止阻塞队列。
func (q *Queue) Read(ctx context.Context, consumer string) (string, *reading.Reading, error) {
	streams, err := q.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    GroupName,
		Consumer: consumer,
		Streams:  []string{StreamName, ">"}, // ">" 表示只接收从未被消费过的新消息
		Count:    1,
		Block:    0, // 阻塞直到有新消息
	}).Result()
	if err != nil {
		return "", nil, fmt.Errorf("从 Redis Stream 读取测量上报失败: %w", err)
	}
	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return "", nil, errors.New("从 Redis Stream 读取到空结果")
	}

	message := streams[0].Messages[0]
	r, err := reading.Decode(message.Values)
	if err != nil {
		log.Printf("‼️ 无法解析测量上报 payload: %v。消息 ID: %s", err, message.ID)
		if ackErr := q.Ack(ctx, message.ID); ackErr != nil {
			log.Printf("‼️ 无法 ACK 无效消息 %s: %v", message.ID, ackErr)
		}
		return message.ID, nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}
	return message.ID, r, nil
}

// Ack 表示消息已被完全处理
func (q *Queue) Ack(ctx context.Context, msgID string) error {
	return q.rdb.XAck(ctx, StreamName, GroupName, msgID).Err()
}
