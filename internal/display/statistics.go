// internal/display/statistics.go
package display

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
)

// Statistics 是拉模式观察者：每次收到通知时从主题读取当前温度，
// 统计最小值、最大值和平均值
type Statistics struct {
	subject observer.PullSubject
	out     io.Writer

	mu      sync.Mutex
	min     float64
	max     float64
	sum     float64
	samples int
}

var (
	_ observer.PullObserver   = (*Statistics)(nil)
	_ observer.DisplayElement = (*Statistics)(nil)
)

// NewStatistics 创建统计显示，并注册到拉模式主题
func NewStatistics(subject observer.PullSubject, out io.Writer) *Statistics {
	d := &Statistics{
		subject: subject,
		out:     out,
		min:     math.Inf(1),
		max:     math.Inf(-1),
	}
	subject.RegisterObserver(d)
	return d
}

// Update 实现了 PullObserver 接口
func (d *Statistics) Update() {
	temp := d.subject.Temperature()

	d.mu.Lock()
	d.sum += temp
	d.samples++
	d.min = math.Min(d.min, temp)
	d.max = math.Max(d.max, temp)
	d.mu.Unlock()

	d.Display()
}

// Summary 返回 平均值/最大值/最小值 以及样本数
func (d *Statistics) Summary() (avg, max, min float64, samples int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.samples == 0 {
		return 0, 0, 0, 0
	}
	return d.sum / float64(d.samples), d.max, d.min, d.samples
}

func (d *Statistics) Display() {
	avg, max, min, _ := d.Summary()
	fmt.Fprintf(d.out, "Avg/Max/Min temperature = %.1f/%.1f/%.1f\n", avg, max, min)
}
