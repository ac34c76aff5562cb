package media

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vedacart/internal/apierror"
)

// ── Fake media host ──────────────────────────────────────────────────────────

type fakeHost struct {
	mu       sync.Mutex
	deleted  []string
	failRefs map[string]bool
	failUp   bool
}

func (h *fakeHost) UploadImage(_ context.Context, name string, _ []byte) (string, error) {
	if h.failUp {
		return "", errors.New("host rejected upload")
	}
	return "https://img.test/upload/v1/" + name, nil
}

func (h *fakeHost) DeleteByReference(_ context.Context, ref string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failRefs[ref] {
		return errors.New("destroy failed")
	}
	h.deleted = append(h.deleted, ref)
	return nil
}

func TestUploadReturnsReference(t *testing.T) {
	store := NewStore(&fakeHost{}, 2)

	ref, err := store.Upload(context.Background(), File{Name: "hero.jpg", Content: []byte{1}})
	require.NoError(t, err)
	assert.Equal(t, "https://img.test/upload/v1/hero.jpg", ref)
}

func TestUploadFailureIsTyped(t *testing.T) {
	store := NewStore(&fakeHost{failUp: true}, 2)

	_, err := store.Upload(context.Background(), File{Name: "hero.jpg"})
	assert.ErrorIs(t, err, apierror.ErrUpload)
}

func TestPurgeIsolatesFailures(t *testing.T) {
	host := &fakeHost{failRefs: map[string]bool{"b": true}}
	store := NewStore(host, 2)

	outcomes := store.Purge(context.Background(), []string{"a", "b", "c"})

	require.Len(t, outcomes, 3)
	assert.Equal(t, PurgeOutcome{Reference: "a", OK: true}, outcomes[0])
	assert.False(t, outcomes[1].OK)
	assert.Equal(t, "b", outcomes[1].Reference)
	assert.NotEmpty(t, outcomes[1].Err)
	assert.Equal(t, PurgeOutcome{Reference: "c", OK: true}, outcomes[2])

	// The failing reference never aborted its siblings.
	assert.ElementsMatch(t, []string{"a", "c"}, host.deleted)
}

func TestPurgeEmptySetIsNoop(t *testing.T) {
	store := NewStore(&fakeHost{}, 2)
	assert.Empty(t, store.Purge(context.Background(), nil))
}
