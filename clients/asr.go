package clients

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

type TransSeg struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type ASRResp struct {
	Text     string     `json:"text"`
	Segments []TransSeg `json:"segments"`
	Language string     `json:"language"`
	Duration float64    `json:"duration"`
}

// Transcript returns the full text, joining segments when the service did not
// send one.
func (r *ASRResp) Transcript() string {
	if t := strings.TrimSpace(r.Text); t != "" {
		return t
	}
	parts := make([]string, 0, len(r.Segments))
	for _, s := range r.Segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// ASR uploads the recording at audioPath to url/transcribe as multipart form
// field "file".
func (h *HTTP) ASR(ctx context.Context, url, audioPath string) (*ASRResp, error) {
	var b bytes.Buffer
	w := multipart.NewWriter(&b)

	fw, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, err
	}
	fd, err := os.Open(audioPath)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return nil, err
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(url, "/")+"/transcribe", &b)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out ASRResp
	if err := h.do(req, "asr", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HTTPTranscriber transcribes through a remote speech-to-text service.
type HTTPTranscriber struct {
	http *HTTP
	url  string
}

func NewHTTPTranscriber(h *HTTP, url string) *HTTPTranscriber {
	return &HTTPTranscriber{http: h, url: url}
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := t.http.ASR(ctx, t.url, audioPath)
	if err != nil {
		return "", err
	}
	return resp.Transcript(), nil
}
