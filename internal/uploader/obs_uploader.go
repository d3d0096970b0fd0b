// internal/uploader/obs_uploader.go
package uploader

import (
	"fmt"
	"log"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
)

// ObsUploader 结构体封装了 OBS 客户端和配置
type ObsUploader struct {
	client *obs.ObsClient
	bucket string
}

// Config 是连接 OBS 所需的参数
type Config struct {
	Endpoint string
	AK       string
	SK       string
	Bucket   string
}

// Complete 判断四个参数是否都已配置
func (c Config) Complete() bool {
	return c.Endpoint != "" && c.AK != "" && c.SK != "" && c.Bucket != ""
}

// NewObsUploader 根据官方文档创建一个新的 OBS 上传器实例
func NewObsUploader(cfg Config) (*ObsUploader, error) {
	client, err := obs.New(cfg.AK, cfg.SK, cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("无法创建 OBS 客户端: %w", err)
	}

	return &ObsUploader{
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// UploadFile 将指定路径的本地文件上传到 OBS
func (u *ObsUploader) UploadFile(objectKey, filePath string) error {
	input := &obs.PutFileInput{}
	input.Bucket = u.bucket
	input.Key = objectKey
	input.SourceFile = filePath

	output, err := u.client.PutFile(input)
	if err != nil {
		// 尝试解析 OBS 返回的详细错误信息
		if obsError, ok := err.(obs.ObsError); ok {
			return fmt.Errorf("上传失败，OBS错误码: %s, 错误信息: %s", obsError.Code, obsError.Message)
		}
		return fmt.Errorf("上传文件到 OBS 失败: %w", err)
	}

	log.Printf("☁️ 测量归档已上传到 OBS 桶 '%s'，对象键为 '%s' (ETag: %s)", u.bucket, objectKey, output.ETag)
	return nil
}

// Close 关闭客户端连接
func (u *ObsUploader) Close() {
	if u.client != nil {
		u.client.Close()
	}
}
