package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedacart/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *CloudinaryClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		CloudinaryCloudName:    "demo",
		CloudinaryAPIKey:       "key",
		CloudinaryAPISecret:    "secret",
		CloudinaryUploadPreset: "vedacart_admin",
	}
	return NewCloudinaryClient(cfg, NewCircuitBreaker(DefaultCBConfig())).WithBaseURL(srv.URL)
}

func TestPublicIDFromReference(t *testing.T) {
	cases := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712345/vedacart/hero.jpg", "vedacart/hero", true},
		{"https://res.cloudinary.com/demo/image/upload/vedacart/hero.png", "vedacart/hero", true},
		{"https://res.cloudinary.com/demo/image/upload/v99/plain", "plain", true},
		{"https://res.cloudinary.com/demo/image/upload/folder.v2/img.webp", "folder.v2/img", true},
		{"https://example.com/no-upload-segment/hero.jpg", "", false},
		{"https://res.cloudinary.com/demo/image/upload/", "", false},
	}
	for _, tc := range cases {
		got, ok := PublicIDFromReference(tc.ref)
		assert.Equal(t, tc.ok, ok, tc.ref)
		assert.Equal(t, tc.want, got, tc.ref)
	}
}

func TestUploadImageReturnsSecureURL(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "vedacart_admin", r.FormValue("upload_preset"))

		json.NewEncoder(w).Encode(map[string]string{
			"secure_url": "https://res.cloudinary.com/demo/image/upload/v1/vedacart/hero.jpg",
		})
	})

	ref, err := client.UploadImage(context.Background(), "hero.jpg", []byte("fake-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/v1/vedacart/hero.jpg", ref)
}

func TestUploadImageSurfacesHostRejection(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "Upload preset not found"},
		})
	})

	_, err := client.UploadImage(context.Background(), "hero.jpg", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Upload preset not found")
}

func TestDeleteByReferenceSignsDestroy(t *testing.T) {
	var gotPublicID, gotSignature string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/demo/image/destroy", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotPublicID = r.FormValue("public_id")
		gotSignature = r.FormValue("signature")
		assert.Equal(t, "true", r.FormValue("invalidate"))
		assert.Equal(t, "key", r.FormValue("api_key"))

		json.NewEncoder(w).Encode(map[string]string{"result": "ok"})
	})

	err := client.DeleteByReference(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1/vedacart/hero.jpg")
	require.NoError(t, err)
	assert.Equal(t, "vedacart/hero", gotPublicID)
	assert.Len(t, gotSignature, 40) // sha1 hex
}

func TestDeleteByReferenceTreatsNotFoundAsDeleted(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"result": "not found"})
	})

	err := client.DeleteByReference(context.Background(),
		"https://res.cloudinary.com/demo/image/upload/v1/gone.jpg")
	assert.NoError(t, err)
}

func TestDeleteByReferenceRejectsUnparseableReference(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})

	err := client.DeleteByReference(context.Background(), "https://example.com/hero.jpg")
	assert.Error(t, err)
}

func TestCircuitBreakerTripsAfterRepeatedFailures(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, SuccessThreshold: 1, OpenTimeout: time.Minute})

	boom := func() error { return assert.AnError }
	require.Error(t, cb.Execute(boom))
	require.Error(t, cb.Execute(boom))

	assert.Equal(t, CBOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(func() error { return nil }), ErrCircuitOpen)
}
