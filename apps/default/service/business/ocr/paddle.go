package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/pitabwire/util"
)

const maxRemoteResponseBytes = 10 << 20

// PaddleOptions are the pipeline switches sent with every remote request.
type PaddleOptions struct {
	UseDocOrientationClassify bool
	UseDocUnwarping           bool
	UseTextlineOrientation    bool
}

type paddleRequest struct {
	File                      string `json:"file"`
	UseDocOrientationClassify bool   `json:"useDocOrientationClassify"`
	UseDocUnwarping           bool   `json:"useDocUnwarping"`
	UseTextlineOrientation    bool   `json:"useTextlineOrientation"`
}

type paddlePrunedResult struct {
	RecTexts *[]string `json:"rec_texts"`
}

type paddleOcrResult struct {
	PrunedResult *paddlePrunedResult `json:"prunedResult"`
}

type paddleResult struct {
	OcrResults []paddleOcrResult `json:"ocrResults"`
}

type paddleResponse struct {
	Result *paddleResult `json:"result"`
}

// RemoteEngine hands images to a PaddleOCR server. The server pulls the image from the
// temp store through its public URL, so the upload only lives for the duration of a call.
type RemoteEngine struct {
	store    storage.TempStore
	httpc    *http.Client
	endpoint string
	options  PaddleOptions
}

func NewRemoteEngine(store storage.TempStore, httpc *http.Client, endpoint string, options PaddleOptions) *RemoteEngine {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &RemoteEngine{
		store:    store,
		httpc:    httpc,
		endpoint: endpoint,
		options:  options,
	}
}

func (e *RemoteEngine) Name() string {
	return "paddle"
}

func (e *RemoteEngine) Recognise(ctx context.Context, in Input) (string, error) {

	contentType := in.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(in.Image)
	}

	key, err := e.store.Save(ctx, in.Filename, contentType, in.Image)
	if err != nil {
		return "", remoteFailure(e.Name(), err, "could not stage image")
	}
	defer func() {
		// The caller's context may already be done, cleanup must still happen.
		cleanupCtx := context.WithoutCancel(ctx)
		if deleteErr := e.store.Delete(cleanupCtx, key); deleteErr != nil {
			util.Log(cleanupCtx).WithError(deleteErr).WithField("key", key).Error("failed to delete temp file")
		}
	}()

	logger := util.Log(ctx).WithField("engine", e.Name()).WithField("key", key)
	logger.Debug("submitting image to remote engine")

	payload, err := json.Marshal(paddleRequest{
		File:                      e.store.URL(key),
		UseDocOrientationClassify: e.options.UseDocOrientationClassify,
		UseDocUnwarping:           e.options.UseDocUnwarping,
		UseTextlineOrientation:    e.options.UseTextlineOrientation,
	})
	if err != nil {
		return "", remoteFailure(e.Name(), err, "could not encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", remoteFailure(e.Name(), err, "could not build request")
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", remoteFailure(e.Name(), err, "request failed")
	}
	defer util.CloseAndLogOnError(ctx, resp.Body)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteResponseBytes))
	if err != nil {
		return "", remoteFailure(e.Name(), err, "could not read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", remoteFailure(e.Name(), nil, fmt.Sprintf("status %d: %s", resp.StatusCode, snippet(body)))
	}

	text, err := parsePaddleResponse(body)
	if err != nil {
		return "", remoteFailure(e.Name(), err, "unexpected response")
	}

	logger.WithField("status", resp.StatusCode).Debug("remote engine responded")
	return text, nil
}

// parsePaddleResponse extracts result.ocrResults[0].prunedResult.rec_texts joined by single spaces.
func parsePaddleResponse(body []byte) (string, error) {

	var out paddleResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("invalid json: %w", err)
	}

	if out.Result == nil {
		return "", fmt.Errorf("no result in paddle ocr response")
	}

	if len(out.Result.OcrResults) == 0 {
		return "", fmt.Errorf("no ocrResults found")
	}

	pruned := out.Result.OcrResults[0].PrunedResult
	if pruned == nil {
		return "", fmt.Errorf("no prunedResult found")
	}

	if pruned.RecTexts == nil {
		return "", fmt.Errorf("no rec_texts found")
	}

	return strings.Join(*pruned.RecTexts, " "), nil
}

func snippet(body []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
