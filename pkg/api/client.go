// Package api is the HTTP client for the referral-bonus backend. Every call
// carries the platform launch payload as an identity header; the backend
// answers JSON bodies with an "error" field on failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const initDataHeader = "X-Telegram-Init-Data"

// Error is a backend-reported failure with a user-presentable message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

type Client struct {
	baseURL  string
	initData string
	http     *http.Client
}

func New(baseURL, initData string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  baseURL,
		initData: initData,
		http:     &http.Client{Timeout: timeout},
	}
}

// Call performs a JSON round trip. body is marshalled when non-nil, out is
// filled from the response when non-nil. Non-2xx responses become *Error with
// the backend's message when one can be decoded, "Request failed" otherwise.
func (c *Client) Call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set(initDataHeader, c.initData)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("request failed")
		return &Error{Message: "Request failed"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: "Request failed"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: decodeErrorMessage(data)}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// CallForFile fetches a binary blob, returning the body and the filename
// suggested by Content-Disposition (empty when absent).
func (c *Client) CallForFile(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set(initDataHeader, c.initData)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", &Error{Message: "Request failed"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &Error{Status: resp.StatusCode, Message: "Request failed"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &Error{Status: resp.StatusCode, Message: decodeErrorMessage(data)}
	}

	var filename string
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			filename = params["filename"]
		}
	}
	return data, filename, nil
}

// Upload sends a multipart file under the "file" field and decodes the JSON
// response into out.
func (c *Client) Upload(ctx context.Context, path, filename string, r io.Reader, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set(initDataHeader, c.initData)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: "Request failed"}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: "Request failed"}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: decodeErrorMessage(data)}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode upload %s: %w", path, err)
		}
	}
	return nil
}

// decodeErrorMessage is best effort: a non-JSON body or one without an
// "error" field degrades to the generic message rather than failing.
func decodeErrorMessage(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return "Request failed"
}
