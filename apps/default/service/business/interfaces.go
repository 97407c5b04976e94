package business

import (
	"context"
)

// RecognitionService defines the business logic interface for text recognition
type RecognitionService interface {
	// Recognise validates the request, runs the engine serving its language and
	// reports the outcome to the audit chat
	Recognise(ctx context.Context, req *RecognitionRequest) (*RecognitionResult, error)
}

// RecognitionRequest contains everything submitted with one image
type RecognitionRequest struct {
	Image       []byte
	Filename    string
	ContentType string
	Language    string
	DeviceID    string
}

// RecognitionResult contains the recognised text and the engine that produced it
type RecognitionResult struct {
	Text   string
	Engine string
}
