package infra

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vedacart/internal/config"
)

// CloudinaryClient talks to the Cloudinary image API: unsigned uploads via
// the configured preset, signed destroys via the admin credentials. All
// calls run through the circuit breaker so a flapping media host fast-fails
// instead of stalling every save.
type CloudinaryClient struct {
	cloudName    string
	apiKey       string
	apiSecret    string
	uploadPreset string
	baseURL      string
	httpClient   *http.Client
	breaker      *CircuitBreaker
}

func NewCloudinaryClient(cfg *config.Config, breaker *CircuitBreaker) *CloudinaryClient {
	return &CloudinaryClient{
		cloudName:    cfg.CloudinaryCloudName,
		apiKey:       cfg.CloudinaryAPIKey,
		apiSecret:    cfg.CloudinaryAPISecret,
		uploadPreset: cfg.CloudinaryUploadPreset,
		baseURL:      "https://api.cloudinary.com/v1_1",
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		breaker:      breaker,
	}
}

// WithBaseURL overrides the API host (tests point this at a local server).
func (c *CloudinaryClient) WithBaseURL(base string) *CloudinaryClient {
	c.baseURL = strings.TrimRight(base, "/")
	return c
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage posts the binary through the unsigned upload endpoint and
// returns the durable secure URL. The caller must treat it as an opaque
// reference — only this client knows how to turn it back into a public id.
func (c *CloudinaryClient) UploadImage(ctx context.Context, name string, content []byte) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("cloudinary: build form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("cloudinary: build form: %w", err)
	}
	if err := w.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("cloudinary: build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("cloudinary: build form: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/image/upload", c.baseURL, c.cloudName)
	var result uploadResponse
	err = c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body.Bytes()))
		if err != nil {
			return fmt.Errorf("cloudinary: create request: %w", err)
		}
		req.Header.Set("Content-Type", w.FormDataContentType())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("cloudinary: host unreachable: %w", err)
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("cloudinary: decode response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			if result.Error.Message != "" {
				return fmt.Errorf("cloudinary: upload rejected: %s", result.Error.Message)
			}
			return fmt.Errorf("cloudinary: host returned %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary: upload response missing secure_url")
	}
	return result.SecureURL, nil
}

type destroyResponse struct {
	Result string `json:"result"` // "ok" | "not found" | error text
}

// DeleteByReference destroys the image a reference points at. A reference
// the host no longer knows ("not found") counts as deleted — the goal is
// that the image is gone, not that this call removed it.
func (c *CloudinaryClient) DeleteByReference(ctx context.Context, ref string) error {
	publicID, ok := PublicIDFromReference(ref)
	if !ok {
		return fmt.Errorf("cloudinary: reference %q has no public id", ref)
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	form := url.Values{}
	form.Set("public_id", publicID)
	form.Set("invalidate", "true")
	form.Set("timestamp", timestamp)
	form.Set("api_key", c.apiKey)
	form.Set("signature", c.sign("invalidate=true&public_id="+publicID+"&timestamp="+timestamp))

	endpoint := fmt.Sprintf("%s/%s/image/destroy", c.baseURL, c.cloudName)
	return c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
		if err != nil {
			return fmt.Errorf("cloudinary: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("cloudinary: host unreachable: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("cloudinary: host returned %d", resp.StatusCode)
		}
		var result destroyResponse
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("cloudinary: decode response: %w", err)
		}
		if result.Result != "ok" && result.Result != "not found" {
			return fmt.Errorf("cloudinary: destroy failed: %s", result.Result)
		}
		return nil
	})
}

// sign produces the SHA-1 request signature over the sorted parameter
// string, per the Cloudinary authentication scheme.
func (c *CloudinaryClient) sign(params string) string {
	sum := sha1.Sum([]byte(params + c.apiSecret))
	return hex.EncodeToString(sum[:])
}

var versionPrefix = regexp.MustCompile(`^v\d+/`)

// PublicIDFromReference extracts the deletable identifier from a delivery
// URL: everything after "/upload/", minus the version segment and the file
// extension. This is a Cloudinary-specific contract — the pattern does not
// generalize to other providers.
func PublicIDFromReference(ref string) (string, bool) {
	_, rest, found := strings.Cut(ref, "/upload/")
	if !found || rest == "" {
		return "", false
	}
	rest = versionPrefix.ReplaceAllString(rest, "")
	if i := strings.LastIndex(rest, "."); i > strings.LastIndex(rest, "/") {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false
	}
	return rest, true
}
