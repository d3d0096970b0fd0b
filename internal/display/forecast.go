// internal/display/forecast.go
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
)

// Trend 表示气压变化趋势
type Trend int

const (
	TrendUnknown Trend = iota
	TrendImproving
	TrendSame
	TrendRainy
)

func (t Trend) String() string {
	switch t {
	case TrendImproving:
		return "Improving weather on the way!"
	case TrendSame:
		return "More of the same"
	case TrendRainy:
		return "Watch out for cooler, rainy weather"
	default:
		return "Not enough data yet"
	}
}

// Forecast 是拉模式观察者，比较本次和上一次读到的气压来给出预报
type Forecast struct {
	subject observer.PullSubject
	out     io.Writer

	mu           sync.Mutex
	current      float64
	last         float64
	observations int
}

// NewForecast 创建预报显示，并注册到拉模式主题
func NewForecast(subject observer.PullSubject, out io.Writer) *Forecast {
	d := &Forecast{subject: subject, out: out}
	subject.RegisterObserver(d)
	return d
}

// Update 实现了 PullObserver 接口
func (d *Forecast) Update() {
	pressure := d.subject.Pressure()

	d.mu.Lock()
	d.last = d.current
	d.current = pressure
	d.observations++
	d.mu.Unlock()

	d.Display()
}

// Trend 返回当前的气压趋势，至少需要两次观测
func (d *Forecast) Trend() Trend {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch {
	case d.observations < 2:
		return TrendUnknown
	case d.current > d.last:
		return TrendImproving
	case d.current == d.last:
		return TrendSame
	default:
		return TrendRainy
	}
}

func (d *Forecast) Display() {
	fmt.Fprintf(d.out, "Forecast: %s\n", d.Trend())
}
