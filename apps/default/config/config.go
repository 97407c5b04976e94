package config

import (
	"strings"
	"time"

	"github.com/pitabwire/frame"
)

// FileSizeBytes is a file size in bytes
type FileSizeBytes int64

// DefaultMaxFileSizeBytes defines the default upload size allowed for a single image
var DefaultMaxFileSizeBytes = FileSizeBytes(10485760)

const (
	TempStorageProviderBlob = "BLOB"
	TempStorageProviderS3   = "S3"

	NotifyTransportMultipart = "multipart"
	NotifyTransportBotAPI    = "botapi"
)

type OcrConfig struct {
	frame.ConfigurationDefault

	// Requests in this language go to the remote engine, everything else is recognised locally.
	RemoteOcrLanguage               string `envDefault:"eng" env:"REMOTE_OCR_LANGUAGE"`
	RemoteOcrURL                    string `envDefault:"https://eng.paddle.digsee.com/ocr" env:"REMOTE_OCR_URL"`
	RemoteOcrDocOrientationClassify bool   `envDefault:"true" env:"REMOTE_OCR_USE_DOC_ORIENTATION_CLASSIFY"`
	RemoteOcrDocUnwarping           bool   `envDefault:"false" env:"REMOTE_OCR_USE_DOC_UNWARPING"`
	RemoteOcrTextlineOrientation    bool   `envDefault:"true" env:"REMOTE_OCR_USE_TEXTLINE_ORIENTATION"`
	TesseractDataPath               string `envDefault:"/usr/share/tesseract-ocr/4.00/tessdata" env:"TESSDATA_PREFIX"`
	OcrMaxImageDimension            int    `envDefault:"4096" env:"OCR_MAX_IMAGE_DIMENSION"`

	// TempStorageURL is a gocloud blob URL: file:///dir, mem://, s3://bucket or gs://bucket.
	TempStorageProvider string `envDefault:"BLOB" env:"TEMP_STORAGE_PROVIDER"`
	TempStorageURL      string `envDefault:"file:///tmp/tempuploads" env:"TEMP_STORAGE_URL"`
	TempPublicBaseURL   string `envDefault:"https://paddleocr-server.onrender.com/tempuploads" env:"TEMP_PUBLIC_BASE_URL"`

	ProviderS3Bucket          string `envDefault:"" env:"S3_BUCKET"`
	ProviderS3Endpoint        string `envDefault:"" env:"S3_ENDPOINT"`
	ProviderS3Region          string `envDefault:"" env:"S3_REGION"`
	ProviderS3AccessKeySecret string `envDefault:"" env:"S3_ACCESS_KEY_SECRET"`
	ProviderS3SessionToken    string `envDefault:"" env:"S3_SESSION_TOKEN"`
	ProviderS3AccessKeyId     string `envDefault:"" env:"S3_ACCESS_KEY_ID"`

	TelegramBotToken        string `envDefault:"" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID          string `envDefault:"" env:"TELEGRAM_CHAT_ID"`
	TelegramAPIURL          string `envDefault:"https://api.telegram.org" env:"TELEGRAM_API_URL"`
	NotifyTransport         string `envDefault:"multipart" env:"NOTIFY_TRANSPORT"`
	NotifyMultipartBoundary string `envDefault:"---011000010111000001101001" env:"NOTIFY_MULTIPART_BOUNDARY"`

	// The maximum image size in bytes accepted by the process-image endpoint.
	// Note: if max_upload_size_bytes is set to 0, the size is unlimited.
	MaxUploadSizeBytes FileSizeBytes `envDefault:"10485760" env:"MAX_UPLOAD_SIZE_BYTES"`

	// Timeout applied to every outbound HTTP call, 0 disables it.
	HTTPClientTimeout time.Duration `envDefault:"60s" env:"HTTP_CLIENT_TIMEOUT"`
}

// IsRemoteLanguage reports whether recognition for language is delegated to the remote engine.
func (c *OcrConfig) IsRemoteLanguage(language string) bool {
	return strings.EqualFold(strings.TrimSpace(language), c.RemoteOcrLanguage)
}

// NotificationsEnabled is false when the chat credentials are not configured.
func (c *OcrConfig) NotificationsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != ""
}
