package routing

import (
	"errors"
	"io"
	"net/http"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/business"
	"github.com/pitabwire/util"
)

const (
	// Field names of the process-image form
	formFieldImage    = "image"
	formFieldLanguage = "language"
	formFieldDeviceID = "device_id"

	// errorKey keeps the trailing colon existing clients match on
	errorKey = "Error:"

	maxFormMemoryBytes = 32 << 20
	// Room for the non file fields and part headers on top of the image limit
	formOverheadBytes = 1 << 20
)

// processImageResponse defines the format of a successful recognition
type processImageResponse struct {
	Text string `json:"text"`
}

// ProcessImage implements POST /api/process-image
// The form carries the image, its language and an optional device id. Invalid input is
// reported with a 200 and an error envelope, recognition failures with a 500.
func ProcessImage(req *http.Request, cfg *config.OcrConfig, recognitionService business.RecognitionService) util.JSONResponse {
	ctx := req.Context()

	recognitionReq, resErr := parseProcessImageRequest(req, cfg.MaxUploadSizeBytes)
	if resErr != nil {
		return *resErr
	}

	result, err := recognitionService.Recognise(ctx, recognitionReq)
	if err != nil {
		var validationErr *business.ValidationError
		if errors.As(err, &validationErr) {
			return errorResponse(http.StatusOK, validationErr.Message)
		}

		util.Log(ctx).WithError(err).
			WithField("language", recognitionReq.Language).
			WithField("device_id", recognitionReq.DeviceID).
			Error("could not process image")
		return errorResponse(http.StatusInternalServerError, business.MsgProcessingFailed)
	}

	return util.JSONResponse{
		Code: http.StatusOK,
		JSON: processImageResponse{Text: result.Text},
	}
}

// parseProcessImageRequest reads the multipart form into a recognition request. A missing
// or unreadable form yields an empty request so that validation reports what is absent.
func parseProcessImageRequest(req *http.Request, maxUploadSizeBytes config.FileSizeBytes) (*business.RecognitionRequest, *util.JSONResponse) {

	if maxUploadSizeBytes > 0 {
		if req.ContentLength > int64(maxUploadSizeBytes)+formOverheadBytes {
			return nil, requestEntityTooLargeJSONResponse()
		}
		req.Body = http.MaxBytesReader(nil, req.Body, int64(maxUploadSizeBytes)+formOverheadBytes)
	}

	r := &business.RecognitionRequest{}

	err := req.ParseMultipartForm(maxFormMemoryBytes)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, requestEntityTooLargeJSONResponse()
		}
		util.Log(req.Context()).WithError(err).Debug("request does not carry a multipart form")
		return r, nil
	}

	r.Language = req.FormValue(formFieldLanguage)
	r.DeviceID = req.FormValue(formFieldDeviceID)

	file, header, err := req.FormFile(formFieldImage)
	if err != nil {
		return r, nil
	}
	defer util.CloseAndLogOnError(req.Context(), file)

	if maxUploadSizeBytes > 0 && header.Size > int64(maxUploadSizeBytes) {
		return nil, requestEntityTooLargeJSONResponse()
	}

	image, err := io.ReadAll(file)
	if err != nil {
		util.Log(req.Context()).WithError(err).Warn("could not read uploaded image")
		return r, nil
	}

	r.Image = image
	r.Filename = header.Filename
	r.ContentType = header.Header.Get("Content-Type")
	return r, nil
}

func errorResponse(code int, message string) util.JSONResponse {
	return util.JSONResponse{
		Code: code,
		JSON: map[string]string{errorKey: message},
	}
}

func requestEntityTooLargeJSONResponse() *util.JSONResponse {
	res := errorResponse(http.StatusRequestEntityTooLarge, "The image is larger than the maximum allowed upload size")
	return &res
}
