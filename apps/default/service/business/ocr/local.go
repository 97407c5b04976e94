package ocr

import (
	"context"
	"strings"

	"github.com/pitabwire/util"
)

// TextRecogniser is the raw text extraction call of a local OCR library.
type TextRecogniser interface {
	Text(ctx context.Context, image []byte, language string) (string, error)
}

// LocalEngine recognises text in process for every language the remote engine does not serve.
type LocalEngine struct {
	recogniser   TextRecogniser
	maxDimension int
}

func NewLocalEngine(recogniser TextRecogniser, maxDimension int) *LocalEngine {
	return &LocalEngine{
		recogniser:   recogniser,
		maxDimension: maxDimension,
	}
}

func (e *LocalEngine) Name() string {
	return "tesseract"
}

func (e *LocalEngine) Recognise(ctx context.Context, in Input) (string, error) {

	raster, err := PrepareRaster(in.Image, e.maxDimension)
	if err != nil {
		return "", localFailure(e.Name(), err, "could not read image")
	}

	language := strings.TrimSpace(in.Language)

	util.Log(ctx).WithField("engine", e.Name()).
		WithField("language", language).
		Debug("recognising image locally")

	text, err := e.recogniser.Text(ctx, raster, language)
	if err != nil {
		return "", localFailure(e.Name(), err, "recognition failed for language "+language)
	}

	return text, nil
}
