package attachment

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rehabdesk/clinic/internal/platform/blobstore"
)

type Service struct {
	repo  Repository
	blobs blobstore.Store
}

func NewService(repo Repository, blobs blobstore.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// Upload stores the file content and records its metadata. The blob key is
// a fresh UUID plus the original extension; the client-supplied filename is
// kept only as display metadata.
func (s *Service) Upload(ctx context.Context, a *Attachment, content io.Reader) error {
	if a.Filename == "" {
		return fmt.Errorf("filename is required")
	}
	if a.ContentType == "" {
		a.ContentType = "application/octet-stream"
	}

	key := uuid.NewString() + filepath.Ext(a.Filename)
	res, err := s.blobs.Save(ctx, key, content)
	if err != nil {
		return err
	}
	a.StorageKey = key
	a.SizeBytes = res.Size
	a.SHA256 = res.Hash

	if err := s.repo.Create(ctx, a); err != nil {
		// metadata write failed, do not leak the blob
		_ = s.blobs.Delete(ctx, key)
		return err
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Attachment, error) {
	return s.repo.GetByID(ctx, id)
}

// Open returns the metadata and a reader over the stored bytes. The caller
// closes the reader.
func (s *Service) Open(ctx context.Context, id uuid.UUID) (*Attachment, io.ReadCloser, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Open(ctx, a.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("open attachment content: %w", err)
	}
	return a, rc, nil
}

// Delete removes the metadata row first, then the blob. A missing blob is
// not an error; the metadata row is authoritative.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.blobs.Delete(ctx, a.StorageKey)
	return nil
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Attachment, int, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Attachment, int, error) {
	return s.repo.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByVisit(ctx context.Context, visitID uuid.UUID, limit, offset int) ([]*Attachment, int, error) {
	return s.repo.ListByVisit(ctx, visitID, limit, offset)
}
