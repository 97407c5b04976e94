package main

import (
	"context"
	"net/http"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/business"
	"github.com/antinvestor/service-ocr/apps/default/service/business/notification"
	"github.com/antinvestor/service-ocr/apps/default/service/business/ocr"
	"github.com/antinvestor/service-ocr/apps/default/service/business/ocr/tesseract"
	"github.com/antinvestor/service-ocr/apps/default/service/handler/routing"
	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/antinvestor/service-ocr/apps/default/service/storage/provider"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
	"github.com/pkg/errors"
)

func main() {

	serviceName := "service_ocr"
	ctx := context.Background()

	cfg, err := frame.ConfigFromEnv[config.OcrConfig]()
	if err != nil {
		util.Log(ctx).With("err", err).Error("could not process configs")
		return
	}

	ctx, svc := frame.NewService(serviceName, frame.WithConfig(&cfg))

	log := svc.Log(ctx)

	serviceHandler, tempStore, err := setupHandler(ctx, &cfg)
	if err != nil {
		log.WithError(err).Fatal("main -- Could not setup the ocr service")
	}
	defer util.CloseAndLogOnError(ctx, tempStore)

	svc.Init(ctx, frame.WithHTTPHandler(serviceHandler))

	log.WithField("server http port", cfg.HTTPPort()).
		WithField("remote language", cfg.RemoteOcrLanguage).
		WithField("temp storage", tempStore.Name()).
		WithField("notifications", cfg.NotificationsEnabled()).
		Info(" Initiating server operations")

	err = svc.Run(ctx, "")
	if err != nil {
		log.WithError(err).Fatal("main -- Could not run Server : %v", err)
	}

}

// setupHandler builds the engines, notifier and routes from cfg. The returned store
// must be closed by the caller.
func setupHandler(ctx context.Context, cfg *config.OcrConfig) (http.Handler, storage.TempStore, error) {

	tempStore, err := provider.GetTempStore(ctx, cfg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "could not setup or access temp storage")
	}

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	localEngine := ocr.NewLocalEngine(tesseract.New(cfg.TesseractDataPath), cfg.OcrMaxImageDimension)
	remoteEngine := ocr.NewRemoteEngine(tempStore, httpClient, cfg.RemoteOcrURL, ocr.PaddleOptions{
		UseDocOrientationClassify: cfg.RemoteOcrDocOrientationClassify,
		UseDocUnwarping:           cfg.RemoteOcrDocUnwarping,
		UseTextlineOrientation:    cfg.RemoteOcrTextlineOrientation,
	})

	notifier, err := notification.NewNotifier(cfg, httpClient)
	if err != nil {
		_ = tempStore.Close()
		return nil, nil, errors.Wrap(err, "could not setup notifications")
	}

	recognitionService := business.NewRecognitionService(cfg, localEngine, remoteEngine, notifier)

	router := routing.SetupRoutes(cfg, recognitionService, tempStore)

	return routing.WrapHandler(router), tempStore, nil
}
