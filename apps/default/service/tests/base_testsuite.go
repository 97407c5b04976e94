package tests

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"time"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/antinvestor/service-ocr/apps/default/service/storage/provider/cloud"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BaseTestSuite struct {
	suite.Suite
}

// DefaultConfig mirrors the env defaults without touching the process environment.
func (bs *BaseTestSuite) DefaultConfig() *config.OcrConfig {
	return &config.OcrConfig{
		RemoteOcrLanguage:               "eng",
		RemoteOcrURL:                    "http://127.0.0.1:0/ocr",
		RemoteOcrDocOrientationClassify: true,
		RemoteOcrDocUnwarping:           false,
		RemoteOcrTextlineOrientation:    true,
		TesseractDataPath:               "/usr/share/tesseract-ocr/4.00/tessdata",
		OcrMaxImageDimension:            4096,
		TempStorageProvider:             config.TempStorageProviderBlob,
		TempStorageURL:                  "mem://",
		TempPublicBaseURL:               "https://ocr.example.test/tempuploads",
		TelegramAPIURL:                  "http://127.0.0.1:0",
		NotifyTransport:                 config.NotifyTransportMultipart,
		NotifyMultipartBoundary:         "---011000010111000001101001",
		MaxUploadSizeBytes:              config.DefaultMaxFileSizeBytes,
		HTTPClientTimeout:               5 * time.Second,
	}
}

// CreateTempStore opens an in-memory store that is closed with the test.
func (bs *BaseTestSuite) CreateTempStore(t *testing.T, publicBaseURL string) storage.TempStore {
	store := cloud.NewProvider(config.TempStorageProviderBlob, "mem://", publicBaseURL)
	require.NoError(t, store.Setup(t.Context()))

	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SampleImage renders a small two colour raster in the requested format ("png" or "jpeg").
func (bs *BaseTestSuite) SampleImage(t *testing.T, format string, width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/4+y/4)%2 == 0 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	default:
		require.NoError(t, png.Encode(&buf, img))
	}
	return buf.Bytes()
}
