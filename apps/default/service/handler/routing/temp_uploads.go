package routing

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/gorilla/mux"
	"github.com/pitabwire/util"
)

// ServeTempUpload implements GET /tempuploads/{key}
// It exposes staged images to the remote OCR engine for as long as a recognition runs.
func ServeTempUpload(w http.ResponseWriter, req *http.Request, store storage.TempStore, key string) {
	ctx := req.Context()

	if !storage.IsValidKey(key) {
		http.NotFound(w, req)
		return
	}

	reader, contentType, err := store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, req)
			return
		}
		util.Log(ctx).WithError(err).WithField("key", key).Error("could not open temp upload")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer util.CloseAndLogOnError(ctx, reader)

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	if sized, ok := reader.(interface{ Size() int64 }); ok {
		w.Header().Set("Content-Length", strconv.FormatInt(sized.Size(), 10))
	}
	w.WriteHeader(http.StatusOK)

	if req.Method == http.MethodHead {
		return
	}

	_, err = io.Copy(w, reader)
	if err != nil {
		util.Log(ctx).WithError(err).WithField("key", key).Error("Failed to stream temp upload")
	}
}

func makeTempUploadAPI(store storage.TempStore) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ServeTempUpload(w, req, store, mux.Vars(req)["key"])
	}
}
