package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/specdock/specdock/internal/spec"
)

var (
	// ErrNoArchive is returned when the original bytes of an upload are
	// requested but no upload archive is configured.
	ErrNoArchive = errors.New("upload archive not configured")
)

// Repository is the persistence contract the service depends on. Both the
// GORM and the in-memory repositories satisfy it.
type Repository interface {
	Create(ctx context.Context, rec *spec.Record) error
	Get(ctx context.Context, id string) (*spec.Record, error)
	List(ctx context.Context) ([]*spec.Record, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// Archive stores the original uploaded bytes of a spec, pre-normalization.
// It is optional; the database stays the source of truth either way.
type Archive interface {
	Store(ctx context.Context, id string, data []byte, contentType string) error
	Fetch(ctx context.Context, id string) (io.ReadCloser, string, error)
	Remove(ctx context.Context, id string) error
}

// Service defines the spec operations used by the handler layers.
type Service interface {
	// Upload parses and validates data, persists a new record and returns
	// it. Nothing is written when parsing or validation fails.
	Upload(ctx context.Context, filename, contentType string, data []byte) (*spec.Record, error)
	Get(ctx context.Context, id string) (*spec.Record, error)
	List(ctx context.Context) ([]*spec.Record, error)
	Delete(ctx context.Context, id string) error
	// Original streams the archived upload bytes and their content type.
	Original(ctx context.Context, id string) (io.ReadCloser, string, error)
}

// NewService returns a Service backed by the given repository. archive may
// be nil, which disables the original-bytes endpoints.
func NewService(repo Repository, archive Archive) Service {
	return &specService{repo: repo, archive: archive}
}

type specService struct {
	repo    Repository
	archive Archive
}

func (s *specService) Upload(ctx context.Context, filename, contentType string, data []byte) (*spec.Record, error) {
	hint := spec.SniffFormat(filename, contentType)
	doc, format, err := spec.Parse(data, hint)
	if err != nil {
		return nil, err
	}
	if err := spec.ValidateOpenAPI(doc); err != nil {
		return nil, err
	}
	content, err := spec.CanonicalJSON(doc)
	if err != nil {
		return nil, err
	}

	rec := &spec.Record{
		ID:      uuid.New().String(),
		Format:  format,
		Content: content,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	logrus.Infof("stored spec %s (%s, %d bytes)", rec.ID, rec.Format, len(data))

	// archive the bytes as uploaded; failures must not fail the request
	if s.archive != nil {
		if err := s.archive.Store(ctx, rec.ID, data, format.ContentType()); err != nil {
			logrus.Warnf("archiving original upload for spec %s failed: %v", rec.ID, err)
		}
	}
	return rec, nil
}

func (s *specService) Get(ctx context.Context, id string) (*spec.Record, error) {
	return s.repo.Get(ctx, id)
}

func (s *specService) List(ctx context.Context) ([]*spec.Record, error) {
	return s.repo.List(ctx)
}

func (s *specService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.archive != nil {
		if err := s.archive.Remove(ctx, id); err != nil {
			logrus.Warnf("removing archived upload for spec %s failed: %v", id, err)
		}
	}
	return nil
}

func (s *specService) Original(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if s.archive == nil {
		return nil, "", ErrNoArchive
	}
	// 404 for unknown ids before touching object storage
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, "", err
	}
	return s.archive.Fetch(ctx, id)
}
