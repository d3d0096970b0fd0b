package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/Slade66/weather-station/internal/archive"
	"github.com/Slade66/weather-station/internal/client"
	"github.com/Slade66/weather-station/internal/display"
	"github.com/Slade66/weather-station/internal/station"
	"github.com/Slade66/weather-station/internal/status"
	"github.com/Slade66/weather-station/internal/stream"
	"github.com/Slade66/weather-station/internal/uploader"
	"github.com/Slade66/weather-station/pkg/reading"
)

// 全局变量，方便在不同函数间使用
var (
	queue         *stream.Queue
	statusManager *status.Manager
	obsUploader   *uploader.ObsUploader
	archiveBatch  int

	archiversMu sync.Mutex
	archivers   []*archive.Archiver
)

// setupStation 为第一次出现的气象站挂载观察者
func setupStation(s *station.Station) {
	display.NewCurrentConditions(s.Push, os.Stdout)
	display.NewHeatIndex(s.Push, os.Stdout)
	status.NewRecorder(s.Push, statusManager, s.Push.ID())
	if obsUploader != nil {
		a := archive.NewArchiver(s.Push, obsUploader, s.Push.ID(), archiveBatch)
		archiversMu.Lock()
		archivers = append(archivers, a)
		archiversMu.Unlock()
	}

	display.NewStatistics(s.Pull, os.Stdout)
	display.NewForecast(s.Pull, os.Stdout)

	log.Printf("🛰️ 新气象站上线: %s，推模式观察者 %d 个，拉模式观察者 %d 个", s.Push.ID(), s.Push.Len(), s.Pull.Len())
}

// applyReading 把一条上报应用到对应的气象站。
// 某个观察者 panic 会中断本次广播，这里只在消息级别兜底，转换成错误返回。
func applyReading(hub *station.Hub, r *reading.Reading) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("观察者在广播过程中 panic: %v", p)
		}
	}()
	hub.Get(r.StationID).Apply(r.Measurement)
	return nil
}

// processReadings 是 Worker 的主循环，持续处理测量上报
func processReadings(ctx context.Context, hub *station.Hub) {
	consumerName, err := os.Hostname()
	if err != nil {
		log.Printf("⚠️ 无法获取主机名，使用默认消费者名称 'worker-%d'", time.Now().Unix())
		consumerName = fmt.Sprintf("worker-%d", time.Now().Unix())
	}
	log.Printf("▶️ Worker '%s' 开始监听测量上报...", consumerName)

	for {
		// 1. 从 Stream 中阻塞式地读取一条新上报
		msgID, r, err := queue.Read(ctx, consumerName)
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, stream.ErrBadPayload) {
			continue
		}
		if err != nil {
			log.Printf("❌ %v。5秒后重试...", err)
			time.Sleep(5 * time.Second)
			continue
		}

		// 2. 设置测量值并通知观察者
		if err := applyReading(hub, r); err != nil {
			// 失败的消息我们不 ACK，以便后续可以重试或手动处理
			log.Printf("🔥 测量上报处理失败: [ID: %s], 错误: %v", r.ID, err)
			continue
		}

		// 3. ACK 消息，表示上报已被完全处理
		if err := queue.Ack(ctx, msgID); err != nil {
			log.Printf("‼️ 关键错误: 无法 ACK 消息 %s: %v", msgID, err)
		}
	}
}

// flushArchivers 在退出前上传所有还没攒满一批的归档
func flushArchivers() {
	archiversMu.Lock()
	defer archiversMu.Unlock()
	for _, a := range archivers {
		if err := a.Flush(); err != nil {
			log.Printf("⚠️ 退出前上传归档失败: %v", err)
		}
	}
}

// parseArchiveBatch 解析 ARCHIVE_BATCH，为空时返回 0，由 Archiver 使用默认批量
func parseArchiveBatch(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("ARCHIVE_BATCH 无效: %q", v)
	}
	return n, nil
}

// main 是程序的总入口
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 初始化 Redis
	rdb := client.GetRedis()
	if err := client.Ping(ctx, rdb); err != nil {
		log.Fatalf("❌ Worker %v", err)
	}
	log.Println("✅ Worker 成功连接到 Redis!")

	queue = stream.NewQueue(rdb)
	statusManager = status.NewManager(rdb)
	log.Println("✅ Status Manager 初始化成功。")

	// 初始化 OBS Uploader，配置不完整时不归档
	obsCfg := uploader.Config{
		Endpoint: os.Getenv("OBS_ENDPOINT"),
		AK:       os.Getenv("OBS_AK"),
		SK:       os.Getenv("OBS_SK"),
		Bucket:   os.Getenv("OBS_BUCKET"),
	}
	batch, err := parseArchiveBatch(os.Getenv("ARCHIVE_BATCH"))
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	archiveBatch = batch
	if obsCfg.Complete() {
		obsUploader, err = uploader.NewObsUploader(obsCfg)
		if err != nil {
			log.Fatalf("❌ 初始化 OBS Uploader 失败: %v", err)
		}
		defer obsUploader.Close() // 确保程序退出时关闭客户端
		log.Println("✅ OBS Uploader 初始化成功。")
	} else {
		log.Println("⚠️ OBS 配置不完整，测量归档已关闭 (OBS_ENDPOINT, OBS_AK, OBS_SK, OBS_BUCKET)")
	}

	// 确保消费者组存在
	if err := queue.EnsureGroup(ctx); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 启动主处理循环，开始工作
	hub := station.NewHub(setupStation)
	processReadings(ctx, hub)

	flushArchivers()
	for _, s := range hub.Stations() {
		m := s.Push.Measurement()
		log.Printf("📊 气象站 %s 最后测量值: %g/%g/%g", s.Push.ID(), m.Temperature, m.Humidity, m.Pressure)
	}
	log.Println("👋 Worker 已退出。")
}
