// main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Slade66/weather-station/internal/display"
	"github.com/Slade66/weather-station/internal/weatherdata"
	"github.com/Slade66/weather-station/pkg/reading"
)

// demoReadings 是本地演示用的固定测量序列
var demoReadings = []reading.Measurement{
	{Temperature: 80, Humidity: 24, Pressure: 12},
	{Temperature: 74, Humidity: 14, Pressure: 34},
	{Temperature: 56, Humidity: 53, Pressure: 13},
	{Temperature: 34, Humidity: 24, Pressure: 54},
}

func main() {
	// 1. 参数解析
	interval := flag.Duration("interval", 5*time.Second, "两次测量之间的间隔")
	loop := flag.Bool("loop", false, "循环播放测量序列，直到进程被终止")
	flag.Parse()

	// 2. 创建主题和观察者，观察者在构造时自动注册
	push := weatherdata.New()
	display.NewCurrentConditions(push, os.Stdout)
	display.NewHeatIndex(push, os.Stdout)
	display.NewHumidityGauge(push, os.Stdout)

	pull := weatherdata.NewPull()
	display.NewStatistics(pull, os.Stdout)
	display.NewForecast(pull, os.Stdout)

	fmt.Printf("🌤️ 气象站 %s 已启动，推模式观察者 %d 个，拉模式观察者 %d 个\n", push.ID(), push.Len(), pull.Len())

	// 3. 依次设置测量值并广播
	for {
		for _, m := range demoReadings {
			push.SetMeasurements(m.Temperature, m.Humidity, m.Pressure)
			push.MeasurementsChanged()

			pull.SetMeasurements(m.Temperature, m.Humidity, m.Pressure)
			pull.MeasurementsChanged()

			time.Sleep(*interval)
		}
		if !*loop {
			break
		}
	}
	fmt.Println("✅ 测量序列播放完成！")
}
