// Copyright 2017 Vector Creations Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package routing

import (
	"encoding/json"
	"net/http"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/business"
	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pitabwire/util"
)

const (
	ProcessImagePath = "/api/process-image"
	HealthCheckPath  = "/healthcheck"
	CaptchaPath      = "/captcha"
	TempUploadsPath  = "/tempuploads/{key}"
)

// SetupRoutes registers the OCR HTTP handlers
func SetupRoutes(
	cfg *config.OcrConfig,
	recognitionService business.RecognitionService,
	store storage.TempStore,
) *mux.Router {

	router := mux.NewRouter()

	processImageHandler := CreateHandler(
		func(req *http.Request) util.JSONResponse {
			return ProcessImage(req, cfg, recognitionService)
		})
	router.Handle(ProcessImagePath, processImageHandler).Methods(http.MethodPost)

	router.HandleFunc(HealthCheckPath, textHandler("is working")).Methods(http.MethodGet)
	router.HandleFunc("/", textHandler("ok")).Methods(http.MethodGet)
	router.HandleFunc(CaptchaPath, CaptchaPage).Methods(http.MethodGet)

	router.Handle(TempUploadsPath, makeTempUploadAPI(store)).Methods(http.MethodGet, http.MethodHead)

	router.NotFoundHandler = CreateHandler(func(req *http.Request) util.JSONResponse {
		return errorResponse(http.StatusNotFound, "Unrecognized request")
	})
	router.MethodNotAllowedHandler = CreateHandler(func(req *http.Request) util.JSONResponse {
		return errorResponse(http.StatusMethodNotAllowed, "Unrecognized request")
	})

	return router
}

// WrapHandler allows every origin and recovers from panics in h, any panic is logged
// with its stack and answered with a 500.
func WrapHandler(h http.Handler) http.Handler {
	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Accept", "Authorization", "Content-Type", "Origin", "X-Requested-With"}),
	)(h)

	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(corsHandler)
}

func textHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}
}

// CreateHandler creates an HTTP handler from a JSON response function
func CreateHandler(f func(*http.Request) util.JSONResponse) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response := f(req)

		if response.Headers != nil {
			for key, value := range response.Headers {
				if values, ok := value.([]string); ok {
					for _, v := range values {
						w.Header().Add(key, v)
					}
				} else if str, ok := value.(string); ok {
					w.Header().Add(key, str)
				}
			}
		}

		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}

		w.WriteHeader(response.Code)
		if response.JSON != nil {
			encoder := json.NewEncoder(w)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(response.JSON); err != nil {
				util.Log(req.Context()).WithError(err).Error("Failed to write JSON response")
			}
		}
	})
}
