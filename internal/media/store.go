// Package media defines the adapter contract to the remote image host.
// Callers deal only in opaque references — how a reference maps to a
// provider-internal identifier is the host client's business.
package media

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"vedacart/internal/apierror"
)

// File is a staged image held in memory until save-time upload.
type File struct {
	Name    string
	Content []byte
}

// PurgeOutcome reports one per-reference deletion result. Purge never fails
// as a whole — one reference's failure must not abort the rest.
type PurgeOutcome struct {
	Reference string
	OK        bool
	Err       string
}

// Store is what the reconciliation engine and the delete flow program
// against. Upload failures abort a save; purge failures never do.
type Store interface {
	Upload(ctx context.Context, f File) (string, error)
	Purge(ctx context.Context, refs []string) []PurgeOutcome
}

// Host is the provider-specific client underneath a Store.
type Host interface {
	UploadImage(ctx context.Context, name string, content []byte) (string, error)
	DeleteByReference(ctx context.Context, ref string) error
}

type hostStore struct {
	host        Host
	concurrency int
}

// NewStore wraps a host client with best-effort, bounded-concurrency purge
// semantics. concurrency caps in-flight remote calls per purge.
func NewStore(host Host, concurrency int) Store {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &hostStore{host: host, concurrency: concurrency}
}

func (s *hostStore) Upload(ctx context.Context, f File) (string, error) {
	ref, err := s.host.UploadImage(ctx, f.Name, f.Content)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", apierror.ErrUpload, f.Name, err)
	}
	return ref, nil
}

// Purge deletes each reference independently and concurrently. Failures are
// logged and reported in the outcomes, never returned — per-reference
// isolation is the contract.
func (s *hostStore) Purge(ctx context.Context, refs []string) []PurgeOutcome {
	outcomes := make([]PurgeOutcome, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ref := range refs {
		i, ref := i, ref
		g.Go(func() error {
			if err := s.host.DeleteByReference(ctx, ref); err != nil {
				log.Warn().Str("reference", ref).Err(err).Msg("media purge failed")
				outcomes[i] = PurgeOutcome{Reference: ref, Err: err.Error()}
				return nil
			}
			outcomes[i] = PurgeOutcome{Reference: ref, OK: true}
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; Wait only joins them

	return outcomes
}
