package status

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoReading 表示该气象站还没有任何测量记录
var ErrNoReading = errors.New("status: no reading recorded for station")

// StationStatus 定义了气象站最新测量值的详细信息，用于JSON序列化
type StationStatus struct {
	StationID   string  `json:"station_id"`
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Pressure    float64 `json:"pressure"`
	UpdatedAt   string  `json:"updated_at"`
}

// hashStore 是 Manager 用到的 Redis 命令，*redis.Client 满足这个接口
type hashStore interface {
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Keys(ctx context.Context, pattern string) *redis.StringSliceCmd
}

// Manager 结构体封装了与Redis的交互
type Manager struct {
	rdb hashStore
}

// NewManager 创建一个新的状态管理器实例
func NewManager(rdb hashStore) *Manager {
	return &Manager{rdb: rdb}
}

// stationKey 返回一个气象站最新测量在Redis中的键名
func (m *Manager) stationKey(stationID string) string {
	return fmt.Sprintf("station:latest:%s", stationID)
}

// SaveLatest 用一次 HSet 覆盖气象站的最新测量值
func (m *Manager) SaveLatest(ctx context.Context, stationID uuid.UUID, r reading.Measurement) error {
	key := m.stationKey(stationID.String())
	fields := map[string]interface{}{
		"station_id":  stationID.String(),
		"temperature": r.Temperature,
		"humidity":    r.Humidity,
		"pressure":    r.Pressure,
		"updated_at":  time.Now().UTC().Format(time.RFC3339),
	}
	return m.rdb.HSet(ctx, key, fields).Err()
}

// GetLatest 获取一个气象站的最新测量值
func (m *Manager) GetLatest(ctx context.Context, stationID uuid.UUID) (*StationStatus, error) {
	data, err := m.rdb.HGetAll(ctx, m.stationKey(stationID.String())).Result()
	if err != nil {
		return nil, err
	}
	// HGetAll 对不存在的键返回空 map 而不是 redis.Nil
	if len(data) == 0 {
		return nil, ErrNoReading
	}
	return parseStatus(data)
}

// GetAllStations 获取所有气象站的最新测量值
func (m *Manager) GetAllStations(ctx context.Context) ([]StationStatus, error) {
	// 1. 扫描所有符合模式的键
	keys, err := m.rdb.Keys(ctx, "station:latest:*").Result()
	if err != nil {
		return nil, err
	}

	stations := make([]StationStatus, 0, len(keys))

	// 2. 遍历每个键，获取其 Hash 数据
	for _, key := range keys {
		data, err := m.rdb.HGetAll(ctx, key).Result()
		if err != nil {
			// 如果某个键读取失败，记录日志并跳过它继续处理其他的
			log.Printf("警告: 无法读取气象站状态 key '%s': %v", key, err)
			continue
		}
		s, err := parseStatus(data)
		if err != nil {
			log.Printf("警告: 气象站状态 key '%s' 数据无效: %v", key, err)
			continue
		}
		stations = append(stations, *s)
	}
	return stations, nil
}

// parseStatus 把 HGetAll 返回的字符串字段还原成 StationStatus
func parseStatus(data map[string]string) (*StationStatus, error) {
	s := &StationStatus{
		StationID: data["station_id"],
		UpdatedAt: data["updated_at"],
	}
	fields := []struct {
		name string
		dst  *float64
	}{
		{"temperature", &s.Temperature},
		{"humidity", &s.Humidity},
		{"pressure", &s.Pressure},
	}
	for _, f := range fields {
		v, err := strconv.ParseFloat(data[f.name], 64)
		if err != nil {
			return nil, fmt.Errorf("字段 %s 无效: %w", f.name, err)
		}
		*f.dst = v
	}
	return s, nil
}
