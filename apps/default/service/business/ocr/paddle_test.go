package ocr_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/antinvestor/service-ocr/apps/default/service/business/ocr"
	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/antinvestor/service-ocr/apps/default/service/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const publicBaseURL = "https://ocr.example.test/tempuploads"

type RemoteEngineTestSuite struct {
	tests.BaseTestSuite
}

func TestRemoteEngineTestSuite(t *testing.T) {
	suite.Run(t, new(RemoteEngineTestSuite))
}

type capturedRequest struct {
	method      string
	accept      string
	contentType string
	body        map[string]any
	key         string
	staged      bool
}

// recordingStore remembers every key it stages so tests can check cleanup when the
// remote engine never reveals the key.
type recordingStore struct {
	storage.TempStore

	mu   sync.Mutex
	keys []string
}

func (s *recordingStore) Save(ctx context.Context, filename string, contentType string, contents []byte) (string, error) {
	key, err := s.TempStore.Save(ctx, filename, contentType, contents)
	if err == nil {
		s.mu.Lock()
		s.keys = append(s.keys, key)
		s.mu.Unlock()
	}
	return key, err
}

func (s *recordingStore) savedKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...)
}

func assertNoTempFiles(t *testing.T, store *recordingStore) {
	keys := store.savedKeys()
	require.NotEmpty(t, keys, "the image was never staged")
	for _, key := range keys {
		exists, err := store.Exists(context.Background(), key)
		require.NoError(t, err)
		assert.False(t, exists, "temp file %s must be removed", key)
	}
}

// paddleServer answers every request with status/body and records what it received.
func paddleServer(t *testing.T, store storage.TempStore, status int, body string) (*httptest.Server, *capturedRequest) {
	captured := &capturedRequest{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.accept = r.Header.Get("accept")
		captured.contentType = r.Header.Get("Content-Type")

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.NoError(t, json.Unmarshal(raw, &captured.body))

		file, _ := captured.body["file"].(string)
		escaped := strings.TrimPrefix(file, publicBaseURL+"/")
		captured.key, err = url.PathUnescape(escaped)
		assert.NoError(t, err)

		captured.staged, err = store.Exists(r.Context(), captured.key)
		assert.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, captured
}

func (suite *RemoteEngineTestSuite) TestRecognise() {
	testCases := []struct {
		name     string
		status   int
		body     string
		wantText string
		wantErr  string
	}{
		{
			name:     "texts joined by single spaces",
			status:   http.StatusOK,
			body:     `{"result":{"ocrResults":[{"prunedResult":{"rec_texts":["A","B","C"]}}]}}`,
			wantText: "A B C",
		},
		{
			name:     "only the first result is used",
			status:   http.StatusOK,
			body:     `{"result":{"ocrResults":[{"prunedResult":{"rec_texts":["Hello","World"]}},{"prunedResult":{"rec_texts":["ignored"]}}]}}`,
			wantText: "Hello World",
		},
		{
			name:     "empty rec_texts is empty text",
			status:   http.StatusOK,
			body:     `{"result":{"ocrResults":[{"prunedResult":{"rec_texts":[]}}]}}`,
			wantText: "",
		},
		{
			name:    "missing result",
			status:  http.StatusOK,
			body:    `{"errorCode":0}`,
			wantErr: "no result in paddle ocr response",
		},
		{
			name:    "missing ocrResults",
			status:  http.StatusOK,
			body:    `{"result":{}}`,
			wantErr: "no ocrResults found",
		},
		{
			name:    "empty ocrResults",
			status:  http.StatusOK,
			body:    `{"result":{"ocrResults":[]}}`,
			wantErr: "no ocrResults found",
		},
		{
			name:    "missing prunedResult",
			status:  http.StatusOK,
			body:    `{"result":{"ocrResults":[{}]}}`,
			wantErr: "no prunedResult found",
		},
		{
			name:    "missing rec_texts",
			status:  http.StatusOK,
			body:    `{"result":{"ocrResults":[{"prunedResult":{"rec_scores":[0.9]}}]}}`,
			wantErr: "no rec_texts found",
		},
		{
			name:    "not json",
			status:  http.StatusOK,
			body:    `<html>bad gateway</html>`,
			wantErr: "invalid json",
		},
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"errorMsg":"boom"}`,
			wantErr: "status 500",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			store := suite.CreateTempStore(t, publicBaseURL)
			server, captured := paddleServer(t, store, tc.status, tc.body)

			engine := ocr.NewRemoteEngine(store, server.Client(), server.URL+"/ocr", ocr.PaddleOptions{
				UseDocOrientationClassify: true,
				UseDocUnwarping:           false,
				UseTextlineOrientation:    true,
			})

			text, err := engine.Recognise(t.Context(), ocr.Input{
				Image:       suite.SampleImage(t, "jpeg", 16, 16),
				Filename:    "receipt.jpg",
				ContentType: "image/jpeg",
				Language:    "eng",
			})

			assert.Equal(t, http.MethodPost, captured.method)
			assert.Equal(t, "application/json", captured.accept)
			assert.Equal(t, "application/json", captured.contentType)
			assert.Equal(t, true, captured.body["useDocOrientationClassify"])
			assert.Equal(t, false, captured.body["useDocUnwarping"])
			assert.Equal(t, true, captured.body["useTextlineOrientation"])
			assert.True(t, strings.HasSuffix(captured.key, "-receipt.jpg"), captured.key)
			assert.True(t, captured.staged, "image must be reachable while the remote engine runs")

			exists, existsErr := store.Exists(t.Context(), captured.key)
			require.NoError(t, existsErr)
			assert.False(t, exists, "temp file must be removed once recognition finishes")

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ocr.ErrRemoteOcr)
				assert.NotErrorIs(t, err, ocr.ErrOcrEngine)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantText, text)
		})
	}
}

func (suite *RemoteEngineTestSuite) TestRecognise_TransportFailure() {
	t := suite.T()
	store := &recordingStore{TempStore: suite.CreateTempStore(t, publicBaseURL)}

	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL + "/ocr"
	server.Close()

	engine := ocr.NewRemoteEngine(store, nil, endpoint, ocr.PaddleOptions{})
	_, err := engine.Recognise(t.Context(), ocr.Input{
		Image:    suite.SampleImage(t, "png", 8, 8),
		Filename: "scan.png",
		Language: "eng",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ocr.ErrRemoteOcr)
	assert.Contains(t, err.Error(), "request failed")
	assertNoTempFiles(t, store)
}

func (suite *RemoteEngineTestSuite) TestRecognise_CancelledMidRequest() {
	t := suite.T()
	store := &recordingStore{TempStore: suite.CreateTempStore(t, publicBaseURL)}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	engine := ocr.NewRemoteEngine(store, server.Client(), server.URL, ocr.PaddleOptions{})
	_, err := engine.Recognise(ctx, ocr.Input{
		Image:    suite.SampleImage(t, "png", 8, 8),
		Filename: "scan.png",
		Language: "eng",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ocr.ErrRemoteOcr)
	assert.ErrorIs(t, err, context.Canceled)
	assertNoTempFiles(t, store)
}

func (suite *RemoteEngineTestSuite) TestRecognise_PublicURL() {
	t := suite.T()
	store := suite.CreateTempStore(t, publicBaseURL)
	server, captured := paddleServer(t, store, http.StatusOK,
		`{"result":{"ocrResults":[{"prunedResult":{"rec_texts":["ok"]}}]}}`)

	engine := ocr.NewRemoteEngine(store, server.Client(), server.URL, ocr.PaddleOptions{})
	_, err := engine.Recognise(t.Context(), ocr.Input{
		Image:    suite.SampleImage(t, "png", 8, 8),
		Filename: "../../etc/passwd",
		Language: "ENG",
	})
	require.NoError(t, err)

	assert.Equal(t, publicBaseURL+"/"+url.PathEscape(captured.key), captured.body["file"])
	assert.True(t, strings.HasSuffix(captured.key, "-passwd"), captured.key)
	assert.True(t, storage.IsValidKey(captured.key))
}
