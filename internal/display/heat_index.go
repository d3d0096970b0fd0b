// internal/display/heat_index.go
package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
)

// HeatIndex 是推模式观察者，根据推送来的温度和湿度计算体感温度
type HeatIndex struct {
	out io.Writer

	mu        sync.Mutex
	heatIndex float64
}

// NewHeatIndex 创建体感温度显示并注册到主题
func NewHeatIndex(subject observer.Subject, out io.Writer) *HeatIndex {
	d := &HeatIndex{out: out}
	subject.RegisterObserver(d)
	return d
}

// Update 实现了 Observer 接口，气压不参与计算
func (d *HeatIndex) Update(temperature, humidity, _ float64) {
	d.mu.Lock()
	d.heatIndex = ComputeHeatIndex(temperature, humidity)
	d.mu.Unlock()

	d.Display()
}

// Value 返回最近一次计算出的体感温度
func (d *HeatIndex) Value() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.heatIndex
}

func (d *HeatIndex) Display() {
	fmt.Fprintf(d.out, "Heat index is %.5f\n", d.Value())
}

// ComputeHeatIndex 使用 Rothfusz 回归公式，t 为华氏温度，rh 为相对湿度（百分比）。
// 不对输入做范围校验。
func ComputeHeatIndex(t, rh float64) float64 {
	return (16.923 + (0.185212 * t) + (5.37941 * rh) - (0.100254 * t * rh) +
		(0.00941695 * (t * t)) + (0.00728898 * (rh * rh)) +
		(0.000345372 * (t * t * rh)) - (0.000814971 * (t * rh * rh)) +
		(0.0000102102 * (t * t * rh * rh)) - (0.000038646 * (t * t * t)) +
		(0.0000291583 * (rh * rh * rh)) + (0.00000142721 * (t * t * t * rh)) +
		(0.000000197483 * (t * rh * rh * rh)) - (0.0000000218429 * (t * t * t * rh * rh)) +
		0.000000000843296*(t*t*rh*rh*rh)) -
		(0.0000000000481975 * (t * t * t * rh * rh * rh))
}
