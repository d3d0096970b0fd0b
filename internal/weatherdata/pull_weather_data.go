// internal/weatherdata/pull_weather_data.go
package weatherdata

import (
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
)

// PullWeatherData 是拉模式的测量主题：广播时不带任何数据，
// 观察者在 Update 中通过 Temperature/Humidity/Pressure 读取当前值
type PullWeatherData struct {
	id        uuid.UUID
	observers registry[observer.PullObserver]

	mu          sync.RWMutex
	temperature float64
	humidity    float64
	pressure    float64
}

var _ observer.PullSubject = (*PullWeatherData)(nil)

// NewPull 创建一个新的 PullWeatherData 实例，并随机分配气象站 ID
func NewPull() *PullWeatherData {
	return NewPullWithID(uuid.New())
}

// NewPullWithID 使用指定的气象站 ID 创建 PullWeatherData
func NewPullWithID(id uuid.UUID) *PullWeatherData {
	return &PullWeatherData{id: id}
}

func (w *PullWeatherData) ID() uuid.UUID {
	return w.id
}

func (w *PullWeatherData) RegisterObserver(o observer.PullObserver) {
	w.observers.add(o)
}

func (w *PullWeatherData) RemoveObserver(o observer.PullObserver) error {
	return w.observers.remove(o)
}

// NotifyObservers 按注册顺序同步通知所有观察者，不传递任何数据
func (w *PullWeatherData) NotifyObservers() {
	for _, o := range w.observers.snapshot() {
		o.Update()
	}
}

// MeasurementsChanged 与 NotifyObservers 完全相同
func (w *PullWeatherData) MeasurementsChanged() {
	w.NotifyObservers()
}

func (w *PullWeatherData) SetMeasurements(temperature, humidity, pressure float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.temperature = temperature
	w.humidity = humidity
	w.pressure = pressure
}

func (w *PullWeatherData) Temperature() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.temperature
}

func (w *PullWeatherData) Humidity() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.humidity
}

func (w *PullWeatherData) Pressure() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.pressure
}

func (w *PullWeatherData) Measurement() reading.Measurement {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return reading.Measurement{
		Temperature: w.temperature,
		Humidity:    w.humidity,
		Pressure:    w.pressure,
	}
}

func (w *PullWeatherData) Len() int {
	return w.observers.len()
}
