// Package clients talks to the services around the scoring core: speech to
// text and chart rendering.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultTimeout = 60 * time.Second

type HTTP struct {
	c   *http.Client
	log *logrus.Entry
}

// NewHTTP returns a client with the given timeout; zero means 60s.
func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTP{
		c:   &http.Client{Timeout: timeout},
		log: logrus.WithField("component", "http"),
	}
}

// do sends req and decodes a 200 JSON response into out. what names the call
// in errors.
func (h *HTTP) do(req *http.Request, what string, out any) error {
	resp, err := h.c.Do(req)
	if err != nil {
		h.log.WithError(err).WithField("url", req.URL.String()).Warn(what + " request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		h.log.WithField("status", resp.StatusCode).WithField("url", req.URL.String()).Warn(what + " returned an error")
		return fmt.Errorf("%s %s: %s", what, resp.Status, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s decode: %w", what, err)
	}
	return nil
}

func (h *HTTP) postJSON(ctx context.Context, url, what string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	r.Header.Set("Content-Type", "application/json")
	return h.do(r, what, out)
}
