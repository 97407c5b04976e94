package notification

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/pitabwire/util"
	"github.com/pkg/errors"
)

const photoFilename = "image.jpg"

// MultipartSender posts sendPhoto requests with a hand built body so that the
// part order and boundary stay fixed.
type MultipartSender struct {
	httpc    *http.Client
	endpoint string
	chatID   string
	boundary string
}

func NewMultipartSender(httpc *http.Client, apiURL, token, chatID, boundary string) (*MultipartSender, error) {
	if httpc == nil {
		httpc = http.DefaultClient
	}

	// SetBoundary rejects anything that is not RFC 2046 compliant, check it once up front.
	if boundary != "" {
		if err := multipart.NewWriter(io.Discard).SetBoundary(boundary); err != nil {
			return nil, errors.Wrapf(err, "invalid multipart boundary %q", boundary)
		}
	}

	return &MultipartSender{
		httpc:    httpc,
		endpoint: fmt.Sprintf("%s/bot%s/sendPhoto", strings.TrimRight(apiURL, "/"), token),
		chatID:   chatID,
		boundary: boundary,
	}, nil
}

func (s *MultipartSender) Name() string {
	return "multipart"
}

func (s *MultipartSender) encode(n Notification) (*bytes.Buffer, string, error) {

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if s.boundary != "" {
		if err := writer.SetBoundary(s.boundary); err != nil {
			return nil, "", err
		}
	}

	if err := writer.WriteField("chat_id", s.chatID); err != nil {
		return nil, "", err
	}
	if err := writer.WriteField("caption", Caption(n)); err != nil {
		return nil, "", err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, photoFilename))
	header.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", err
	}
	if _, err = part.Write(n.Image); err != nil {
		return nil, "", err
	}

	if err = writer.Close(); err != nil {
		return nil, "", err
	}

	return body, writer.FormDataContentType(), nil
}

func (s *MultipartSender) Notify(ctx context.Context, n Notification) error {

	body, contentType, err := s.encode(n)
	if err != nil {
		return errors.Wrap(err, "could not build notification body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, body)
	if err != nil {
		return errors.Wrap(err, "could not build notification request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "notification request failed")
	}
	defer util.CloseAndLogOnError(ctx, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.Errorf("notification rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	util.Log(ctx).WithField("device_id", n.DeviceID).WithField("status", resp.StatusCode).Debug("notification sent")
	return nil
}
