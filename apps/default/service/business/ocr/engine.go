package ocr

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrOcrEngine marks failures of the local engine, including undecodable images.
	ErrOcrEngine = errors.New("ocr engine error")
	// ErrRemoteOcr marks failures talking to, or understanding, the remote engine.
	ErrRemoteOcr = errors.New("remote ocr error")
)

// Input is a single image submitted for recognition.
type Input struct {
	Image       []byte
	Filename    string
	ContentType string
	Language    string
}

// Engine turns an image into plain text.
type Engine interface {
	Name() string
	Recognise(ctx context.Context, in Input) (string, error)
}

// RecognitionError carries the failure kind (ErrOcrEngine or ErrRemoteOcr) next to its cause.
type RecognitionError struct {
	Engine string
	Kind   error
	Err    error
}

func (e *RecognitionError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Engine)
	sb.WriteString(": ")
	sb.WriteString(e.Kind.Error())
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *RecognitionError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func localFailure(engine string, cause error, msg string) error {
	return &RecognitionError{Engine: engine, Kind: ErrOcrEngine, Err: errors.Wrap(cause, msg)}
}

func remoteFailure(engine string, cause error, msg string) error {
	if cause == nil {
		return &RecognitionError{Engine: engine, Kind: ErrRemoteOcr, Err: errors.New(msg)}
	}
	return &RecognitionError{Engine: engine, Kind: ErrRemoteOcr, Err: errors.Wrap(cause, msg)}
}
