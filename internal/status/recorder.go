package status

import (
	"context"
	"log"
	"time"

	"github.com/Slade66/weather-station/internal/observer"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
)

const saveTimeout = 3 * time.Second

// Recorder 是一个推模式观察者，把每次广播的测量值写入 Redis。
// 写入失败是非关键性错误，只记录日志，不影响其它观察者。
type Recorder struct {
	manager   *Manager
	stationID uuid.UUID
}

var _ observer.Observer = (*Recorder)(nil)

// NewRecorder 创建 Recorder 并注册到主题
func NewRecorder(subject observer.Subject, manager *Manager, stationID uuid.UUID) *Recorder {
	r := &Recorder{manager: manager, stationID: stationID}
	subject.RegisterObserver(r)
	return r
}

// Update 实现了 Observer 接口
func (r *Recorder) Update(temperature, humidity, pressure float64) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	m := reading.Measurement{Temperature: temperature, Humidity: humidity, Pressure: pressure}
	if err := r.manager.SaveLatest(ctx, r.stationID, m); err != nil {
		log.Printf("警告：无法保存气象站 %s 的最新测量值: %v", r.stationID, err)
	}
}
