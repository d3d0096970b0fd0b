// internal/archive/archiver.go
package archive

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Slade66/weather-station/internal/observer"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/google/uuid"
)

// DefaultBatchSize 每收到多少次通知上传一次
const DefaultBatchSize = 100

// Uploader 负责把本地文件上传到对象存储，*uploader.ObsUploader 满足这个接口
type Uploader interface {
	UploadFile(objectKey, filePath string) error
}

// record 是归档文件中的一行
type record struct {
	StationID  uuid.UUID `json:"station_id"`
	ObservedAt time.Time `json:"observed_at"`
	reading.Measurement
}

// Archiver 是一个推模式观察者：缓存每次广播的测量值，
// 攒够 batchSize 条后写成 JSON Lines 临时文件并上传。
// 上传失败时保留缓存，下次再一起上传。
type Archiver struct {
	uploader  Uploader
	stationID uuid.UUID
	batchSize int
	now       func() time.Time

	mu      sync.Mutex
	pending []record
}

var _ observer.Observer = (*Archiver)(nil)

// NewArchiver 创建 Archiver 并注册到主题，batchSize <= 0 时使用默认值
func NewArchiver(subject observer.Subject, up Uploader, stationID uuid.UUID, batchSize int) *Archiver {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	a := &Archiver{
		uploader:  up,
		stationID: stationID,
		batchSize: batchSize,
		now:       time.Now,
	}
	subject.RegisterObserver(a)
	return a
}

// Update 实现了 Observer 接口
func (a *Archiver) Update(temperature, humidity, pressure float64) {
	a.mu.Lock()
	a.pending = append(a.pending, record{
		StationID:   a.stationID,
		ObservedAt:  a.now().UTC(),
		Measurement: reading.Measurement{Temperature: temperature, Humidity: humidity, Pressure: pressure},
	})
	full := len(a.pending) >= a.batchSize
	a.mu.Unlock()

	if full {
		if err := a.Flush(); err != nil {
			log.Printf("⚠️ 测量归档上传失败，将在下一批重试: %v", err)
		}
	}
}

// Pending 返回尚未上传的记录数
func (a *Archiver) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

// Flush 立即上传所有缓存的记录，没有记录时什么也不做
func (a *Archiver) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.pending) == 0 {
		return nil
	}

	path, err := a.writeBatch()
	if err != nil {
		return err
	}
	// 无论上传是否成功都清理本地临时文件
	defer os.Remove(path)

	objectKey := fmt.Sprintf("readings/%s/%d.jsonl", a.stationID, a.now().UnixNano())
	if err := a.uploader.UploadFile(objectKey, path); err != nil {
		return err
	}
	a.pending = a.pending[:0]
	return nil
}

// writeBatch 把缓存写入临时文件，调用方需持有锁
func (a *Archiver) writeBatch() (string, error) {
	f, err := os.CreateTemp("", "weather-archive-*.jsonl")
	if err != nil {
		return "", fmt.Errorf("创建临时归档文件失败: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range a.pending {
		if err := enc.Encode(r); err != nil {
			os.Remove(f.Name())
			return "", fmt.Errorf("写入归档记录失败: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("写入归档文件失败: %w", err)
	}
	return f.Name(), nil
}
