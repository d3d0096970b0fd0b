package reading

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PayloadField 是 Redis Stream 消息中存放 JSON 的字段名
const PayloadField = "payload"

// ErrMissingPayload 表示消息中没有 payload 字段
var ErrMissingPayload = errors.New("reading: missing payload field")

// Measurement 是一次完整的测量值：温度、湿度、气压。
// 不做任何范围校验，传入什么就保存什么。
type Measurement struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
}

// Reading 定义了一条测量上报，它将作为消息在 Redis Stream 中传递。
type Reading struct {
	// 上报的唯一标识符，由 API 服务在接收时生成。
	ID uuid.UUID `json:"id"`

	// 产生这条测量的气象站。
	StationID uuid.UUID `json:"station_id"`

	Measurement

	// API 接收到上报的时间 (UTC)。
	SubmittedAt time.Time `json:"submitted_at"`
}

// New 为指定气象站创建一条新的上报，并分配 ID
func New(stationID uuid.UUID, m Measurement) *Reading {
	return &Reading{
		ID:          uuid.New(),
		StationID:   stationID,
		Measurement: m,
		SubmittedAt: time.Now().UTC(),
	}
}

// Encode 把上报序列化为 JSON 字符串
func (r *Reading) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("序列化测量上报失败: %w", err)
	}
	return string(data), nil
}

// Decode 从 Stream 消息的字段中解析出上报。
// go-redis 读出来的值是 string，写入时也可能是 []byte，两者都接受。
func Decode(values map[string]interface{}) (*Reading, error) {
	raw, ok := values[PayloadField]
	if !ok {
		return nil, ErrMissingPayload
	}

	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, fmt.Errorf("reading: unexpected payload type %T", raw)
	}

	var r Reading
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("解析测量上报失败: %w", err)
	}
	return &r, nil
}
