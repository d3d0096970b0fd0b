// internal/api/handler.go
package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/Slade66/weather-station/internal/status"
	"github.com/Slade66/weather-station/pkg/reading"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Publisher 把测量上报投递到队列，*stream.Queue 满足这个接口
type Publisher interface {
	Publish(ctx context.Context, r *reading.Reading) (string, error)
}

// StatusReader 读取气象站的最新测量值，*status.Manager 满足这个接口
type StatusReader interface {
	GetLatest(ctx context.Context, stationID uuid.UUID) (*status.StationStatus, error)
	GetAllStations(ctx context.Context) ([]status.StationStatus, error)
}

// Handler 持有 HTTP 处理函数依赖的服务
type Handler struct {
	queue          Publisher
	status         StatusReader
	defaultStation uuid.UUID
}

// NewHandler 创建 Handler，请求中未携带 station_id 时使用 defaultStation
func NewHandler(queue Publisher, statusReader StatusReader, defaultStation uuid.UUID) *Handler {
	return &Handler{queue: queue, status: statusReader, defaultStation: defaultStation}
}

// Register 在路由上注册所有 API
func (h *Handler) Register(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/measurements", h.submitMeasurement)
		api.GET("/stations", h.listStations)
		api.GET("/stations/:id", h.getStation)
	}
}

// measurementRequest 三项测量值都必须出现，但不限制取值范围
type measurementRequest struct {
	StationID   string   `json:"station_id"`
	Temperature *float64 `json:"temperature" binding:"required"`
	Humidity    *float64 `json:"humidity" binding:"required"`
	Pressure    *float64 `json:"pressure" binding:"required"`
}

// submitMeasurement 接收一次测量上报并投递到 Redis Stream
func (h *Handler) submitMeasurement(c *gin.Context) {
	var request measurementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求: " + err.Error()})
		return
	}

	stationID := h.defaultStation
	if request.StationID != "" {
		id, err := uuid.Parse(request.StationID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 station_id: " + err.Error()})
			return
		}
		stationID = id
	}

	r := reading.New(stationID, reading.Measurement{
		Temperature: *request.Temperature,
		Humidity:    *request.Humidity,
		Pressure:    *request.Pressure,
	})
	if _, err := h.queue.Publish(c.Request.Context(), r); err != nil {
		log.Printf("❌ 发布测量上报失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法将测量上报发布到 Redis"})
		return
	}

	log.Printf("📥 测量上报已投递到消息队列，ID: %s，气象站: %s", r.ID, stationID)
	c.JSON(http.StatusAccepted, gin.H{
		"message":    "测量上报已成功接收，正在排队等待处理...",
		"reading_id": r.ID.String(),
		"station_id": stationID.String(),
	})
}

// listStations 返回所有气象站的最新测量值
func (h *Handler) listStations(c *gin.Context) {
	stations, err := h.status.GetAllStations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法从 Redis 获取气象站列表: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, stations)
}

// getStation 返回单个气象站的最新测量值
func (h *Handler) getStation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的气象站 ID: " + err.Error()})
		return
	}

	s, err := h.status.GetLatest(c.Request.Context(), id)
	if errors.Is(err, status.ErrNoReading) {
		c.JSON(http.StatusNotFound, gin.H{"error": "该气象站还没有测量记录"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法从 Redis 获取气象站状态: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}
