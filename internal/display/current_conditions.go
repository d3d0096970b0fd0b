// internal/display/current_conditions.go
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
	"github.com/Slade66/weather-station/pkg/reading"
)

// CurrentConditions 是推模式观察者：保存最近一次推送的三项测量值，然后显示出来
type CurrentConditions struct {
	out io.Writer

	mu          sync.Mutex
	temperature float64
	humidity    float64
	pressure    float64
}

var (
	_ observer.Observer       = (*CurrentConditions)(nil)
	_ observer.DisplayElement = (*CurrentConditions)(nil)
)

// NewCurrentConditions 创建当前状况显示，并在构造时注册到主题
func NewCurrentConditions(subject observer.Subject, out io.Writer) *CurrentConditions {
	d := &CurrentConditions{out: out}
	subject.RegisterObserver(d)
	return d
}

// Update 实现了 Observer 接口
func (d *CurrentConditions) Update(temperature, humidity, pressure float64) {
	d.mu.Lock()
	d.temperature = temperature
	d.humidity = humidity
	d.pressure = pressure
	d.mu.Unlock()

	d.Display()
}

// Measurement 返回最近一次收到的测量值
func (d *CurrentConditions) Measurement() reading.Measurement {
	d.mu.Lock()
	defer d.mu.Unlock()
	return reading.Measurement{
		Temperature: d.temperature,
		Humidity:    d.humidity,
		Pressure:    d.pressure,
	}
}

func (d *CurrentConditions) Display() {
	m := d.Measurement()
	fmt.Fprintln(d.out, "=== CURRENT CONDITIONS ===")
	fmt.Fprintf(d.out, "Current Temp: %g Celsius\n", m.Temperature)
	fmt.Fprintf(d.out, "Current Humidity: %g%%\n", m.Humidity)
	fmt.Fprintf(d.out, "Current Pressure: %g hPa\n", m.Pressure)
	fmt.Fprintln(d.out, "=== END OF DISPLAY ===")
}
