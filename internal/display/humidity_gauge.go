// internal/display/humidity_gauge.go
package display

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync"

	"github.com/Slade66/weather-station/internal/observer"
)

// HumidityGauge 是一个推模式观察者，把湿度画成终端里的一根进度条
type HumidityGauge struct {
	out      io.Writer
	humidity float64
	barWidth int
	mu       sync.Mutex
}

// NewHumidityGauge 创建湿度条观察者并注册到主题
func NewHumidityGauge(subject observer.Subject, out io.Writer) *HumidityGauge {
	g := &HumidityGauge{
		out:      out,
		barWidth: 50, // 进度条在终端的显示宽度
	}
	subject.RegisterObserver(g)
	return g
}

// Update 实现了 Observer 接口
func (g *HumidityGauge) Update(_, humidity, _ float64) {
	g.mu.Lock()
	g.humidity = humidity
	g.mu.Unlock()

	g.Display()
}

// Humidity 返回最近一次收到的湿度（原样保存，不做截断）
func (g *HumidityGauge) Humidity() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.humidity
}

// Display 在终端上绘制湿度条，超出 [0, 100] 的值和 NaN 只在绘制时截断
func (g *HumidityGauge) Display() {
	g.mu.Lock()
	defer g.mu.Unlock()

	percent := g.humidity / 100
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	} else if percent > 1 {
		percent = 1
	}
	filledWidth := int(percent * float64(g.barWidth))

	// 构建进度条的视觉表示
	bar := strings.Repeat("=", filledWidth) + strings.Repeat(" ", g.barWidth-filledWidth)
	fmt.Fprintf(g.out, "Humidity [%s] %.2f%%\n", bar, g.humidity)
}
