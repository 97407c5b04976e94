package tesseract

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract runs recognition through libtesseract using language data under dataPath.
type Tesseract struct {
	dataPath      string
	clientFactory func() *gosseract.Client
}

func New(dataPath string) *Tesseract {
	return &Tesseract{
		dataPath:      dataPath,
		clientFactory: gosseract.NewClient,
	}
}

// Text uses a fresh client per call, gosseract clients are not safe for concurrent use.
func (ts *Tesseract) Text(ctx context.Context, image []byte, language string) (string, error) {

	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := ts.clientFactory()
	defer func() { _ = client.Close() }()

	if ts.dataPath != "" {
		if err := client.SetTessdataPrefix(ts.dataPath); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}

	if err := client.SetLanguage(language); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	return client.Text()
}
