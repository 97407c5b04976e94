package provider

import (
	"context"
	"strings"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/antinvestor/service-ocr/apps/default/service/storage/provider/cloud"
	"github.com/antinvestor/service-ocr/apps/default/service/storage/provider/s3"
)

func GetTempStore(ctx context.Context, cfg *config.OcrConfig) (storage.TempStore, error) {
	var provider storage.TempStore
	switch strings.ToUpper(cfg.TempStorageProvider) {
	case config.TempStorageProviderS3:

		provider = s3.NewProvider(config.TempStorageProviderS3, cfg.TempPublicBaseURL, cfg.ProviderS3Bucket,
			cfg.ProviderS3Endpoint, cfg.ProviderS3Region, cfg.ProviderS3AccessKeySecret,
			cfg.ProviderS3SessionToken, cfg.ProviderS3AccessKeyId)

	default:

		provider = cloud.NewProvider(config.TempStorageProviderBlob, cfg.TempStorageURL, cfg.TempPublicBaseURL)

	}

	err := provider.Setup(ctx)
	return provider, err

}
