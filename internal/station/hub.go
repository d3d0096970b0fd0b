// internal/station/hub.go
package station

import (
	"sync"

	"github.com/Slade66/weather-station/internal/weatherdata"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
)

// Station 是一个气象站的一对主题：推模式和拉模式各一个，
// 两者互不干扰，各自挂自己的观察者
type Station struct {
	Push *weatherdata.WeatherData
	Pull *weatherdata.PullWeatherData
}

// Apply 先设置测量值再广播，推模式主题在前。
// 观察者的 panic 会原样向上传播。
func (s *Station) Apply(m reading.Measurement) {
	s.Push.SetMeasurements(m.Temperature, m.Humidity, m.Pressure)
	s.Push.MeasurementsChanged()

	s.Pull.SetMeasurements(m.Temperature, m.Humidity, m.Pressure)
	s.Pull.MeasurementsChanged()
}

// SetupFunc 在气象站第一次出现时挂载观察者
type SetupFunc func(s *Station)

// Hub 按气象站 ID 管理 Station，第一次收到某个气象站的上报时创建
type Hub struct {
	setup SetupFunc

	mu       sync.Mutex
	stations map[uuid.UUID]*Station
}

// NewHub 创建一个新的 Hub，setup 可以为 nil
func NewHub(setup SetupFunc) *Hub {
	return &Hub{
		setup:    setup,
		stations: make(map[uuid.UUID]*Station),
	}
}

// Get 返回指定气象站，不存在时创建并调用 setup
func (h *Hub) Get(id uuid.UUID) *Station {
	h.mu.Lock()
	defer h.mu.Unlock()

	if s, ok := h.stations[id]; ok {
		return s
	}
	s := &Station{
		Push: weatherdata.NewWithID(id),
		Pull: weatherdata.NewPullWithID(id),
	}
	if h.setup != nil {
		h.setup(s)
	}
	h.stations[id] = s
	return s
}

// Stations 返回当前已知的气象站
func (h *Hub) Stations() []*Station {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Station, 0, len(h.stations))
	for _, s := range h.stations {
		out = append(out, s)
	}
	return out
}
