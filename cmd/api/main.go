package main

import (
	"context"
	"log"
	"os"

	"github.com/Slade66/weather-station/internal/api"
	"github.com/Slade66/weather-station/internal/client"
	"github.com/Slade66/weather-station/internal/status"
	"github.com/Slade66/weather-station/internal/stream"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func main() {
	// 初始化 Redis
	rdb := client.GetRedis()
	if err := client.Ping(context.Background(), rdb); err != nil {
		log.Fatalf("❌ API %v", err)
	}
	log.Println("✅ API 成功连接到 Redis!")

	// 未携带 station_id 的上报归到默认气象站
	defaultStation := uuid.Nil
	if s := os.Getenv("STATION_ID"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			log.Fatalf("❌ STATION_ID 无效: %v", err)
		}
		defaultStation = id
	}

	handler := api.NewHandler(stream.NewQueue(rdb), status.NewManager(rdb), defaultStation)

	// 设置 Gin
	router := gin.Default()
	handler.Register(router)

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("🚀 API 服务已启动，监听端口 %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("❌ API 服务异常退出: %v", err)
	}
}
