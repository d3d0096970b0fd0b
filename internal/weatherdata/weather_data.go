// internal/weatherdata/weather_data.go
package weatherdata

import (
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
)

// WeatherData 是推模式的测量主题：保存最新的测量值，
// 广播时把三项测量值作为参数推给每个观察者
type WeatherData struct {
	id        uuid.UUID
	observers registry[observer.Observer]

	mu          sync.RWMutex
	temperature float64
	humidity    float64
	pressure    float64
}

var _ observer.Subject = (*WeatherData)(nil)

// New 创建一个新的 WeatherData 实例，并随机分配气象站 ID
func New() *WeatherData {
	return NewWithID(uuid.New())
}

// NewWithID 使用指定的气象站 ID 创建 WeatherData
func NewWithID(id uuid.UUID) *WeatherData {
	return &WeatherData{id: id}
}

// ID 返回气象站 ID
func (w *WeatherData) ID() uuid.UUID {
	return w.id
}

// RegisterObserver 实现了 Subject 接口，重复注册的观察者每次广播会收到多次通知
func (w *WeatherData) RegisterObserver(o observer.Observer) {
	w.observers.add(o)
}

// RemoveObserver 实现了 Subject 接口，移除第一个匹配的观察者
func (w *WeatherData) RemoveObserver(o observer.Observer) error {
	return w.observers.remove(o)
}

// NotifyObservers 实现了 Subject 接口，按注册顺序同步通知所有观察者。
// 观察者 panic 不会被捕获，本轮后面的观察者也不会再收到通知。
func (w *WeatherData) NotifyObservers() {
	m := w.Measurement()
	for _, o := range w.observers.snapshot() {
		o.Update(m.Temperature, m.Humidity, m.Pressure)
	}
}

// MeasurementsChanged 与 NotifyObservers 完全相同
func (w *WeatherData) MeasurementsChanged() {
	w.NotifyObservers()
}

// SetMeasurements 覆盖三项测量值，不做校验，也不会触发广播
func (w *WeatherData) SetMeasurements(temperature, humidity, pressure float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.temperature = temperature
	w.humidity = humidity
	w.pressure = pressure
}

// Measurement 返回当前测量值的副本
func (w *WeatherData) Measurement() reading.Measurement {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return reading.Measurement{
		Temperature: w.temperature,
		Humidity:    w.humidity,
		Pressure:    w.pressure,
	}
}

// Len 返回当前注册的观察者数量（重复注册的按次数计算）
func (w *WeatherData) Len() int {
	return w.observers.len()
}
