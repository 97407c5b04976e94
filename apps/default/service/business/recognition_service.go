package business

import (
	"context"
	"fmt"
	"strings"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/business/notification"
	"github.com/antinvestor/service-ocr/apps/default/service/business/ocr"
	"github.com/pitabwire/util"
	"github.com/pkg/errors"
)

const (
	MsgNoImage          = "No image loaded."
	MsgNoLanguage       = "The language is not specified."
	MsgProcessingFailed = "Error occurred while processing the image"
)

var (
	// ErrInvalidInput marks requests rejected before any engine is called.
	ErrInvalidInput = errors.New("invalid input")
	// ErrProcessing marks requests whose recognition failed.
	ErrProcessing = errors.New("processing failed")
)

// ValidationError carries the message shown to the client for an invalid request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// recognitionService implements the RecognitionService interface
type recognitionService struct {
	cfg      *config.OcrConfig
	local    ocr.Engine
	remote   ocr.Engine
	notifier notification.Notifier
}

// NewRecognitionService creates a new instance of the recognition service
func NewRecognitionService(cfg *config.OcrConfig, local, remote ocr.Engine, notifier notification.Notifier) RecognitionService {
	return &recognitionService{
		cfg:      cfg,
		local:    local,
		remote:   remote,
		notifier: notifier,
	}
}

// Recognise implements the business logic for recognising the text in an image
func (s *recognitionService) Recognise(ctx context.Context, req *RecognitionRequest) (*RecognitionResult, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	language := strings.TrimSpace(req.Language)
	engine := s.engineFor(language)

	logger := util.Log(ctx).
		WithField("language", language).
		WithField("engine", engine.Name()).
		WithField("device_id", req.DeviceID)
	logger.Debug("recognising image")

	text, err := engine.Recognise(ctx, ocr.Input{
		Image:       req.Image,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		Language:    language,
	})
	if err != nil {
		logger.WithError(err).Error("image recognition failed")
		return nil, fmt.Errorf("%w: %w", ErrProcessing, err)
	}

	s.notify(ctx, notification.Notification{
		Image:    req.Image,
		Language: language,
		Text:     text,
		DeviceID: req.DeviceID,
	})

	return &RecognitionResult{
		Text:   text,
		Engine: engine.Name(),
	}, nil
}

// validateRequest checks the image first, then the language
func (s *recognitionService) validateRequest(req *RecognitionRequest) error {
	if req == nil || len(req.Image) == 0 {
		return &ValidationError{Message: MsgNoImage}
	}

	if strings.TrimSpace(req.Language) == "" {
		return &ValidationError{Message: MsgNoLanguage}
	}

	return nil
}

func (s *recognitionService) engineFor(language string) ocr.Engine {
	if s.cfg.IsRemoteLanguage(language) {
		return s.remote
	}
	return s.local
}

// notify never fails the request, a lost audit message is only logged
func (s *recognitionService) notify(ctx context.Context, n notification.Notification) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		util.Log(ctx).WithError(err).
			WithField("notifier", s.notifier.Name()).
			WithField("device_id", n.DeviceID).
			Warn("could not send notification")
	}
}
