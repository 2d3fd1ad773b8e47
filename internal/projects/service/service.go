// Package service orchestrates project mutations: validation, defaults,
// merge semantics and the best-effort cleanup of replaced images.
package service

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/devfolio-labs/portfolio-backend/internal/media"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/domain"
	"github.com/devfolio-labs/portfolio-backend/internal/projects/store"
)

type ProjectService struct {
	store store.Store
	media media.Service // nil when the media relay is not configured
	now   func() time.Time
}

func New(st store.Store, md media.Service) *ProjectService {
	return &ProjectService{
		store: st,
		media: md,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List returns every project, newest first.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(projects)-1; i < j; i, j = i+1, j-1 {
		projects[i], projects[j] = projects[j], projects[i]
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	n, err := parseID(id)
	if err != nil {
		return domain.Project{}, store.ErrNotFound
	}
	return s.store.Get(ctx, n)
}

func (s *ProjectService) Create(ctx context.Context, draft domain.Draft) (domain.Project, error) {
	if err := draft.Validate(); err != nil {
		return domain.Project{}, err
	}
	return s.store.Append(ctx, domain.New(draft, s.now()))
}

// Update shallow-merges the patch over the stored record. When the patch
// replaces a hosted image, the old one is deleted best-effort after the
// record is persisted.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Patch) (domain.Project, error) {
	n, err := parseID(id)
	if err != nil {
		return domain.Project{}, store.ErrNotFound
	}

	p, err := s.store.Get(ctx, n)
	if err != nil {
		return domain.Project{}, err
	}

	oldImage := p.Image
	p.Apply(patch, s.now())

	updated, err := s.store.Replace(ctx, n, p)
	if err != nil {
		return domain.Project{}, err
	}

	if oldImage != updated.Image && media.IsHostedURL(oldImage) {
		s.cleanupImage(ctx, oldImage)
	}
	return updated, nil
}

// Delete removes the record and best-effort deletes its hosted image.
func (s *ProjectService) Delete(ctx context.Context, id string) (domain.Project, error) {
	n, err := parseID(id)
	if err != nil {
		return domain.Project{}, store.ErrNotFound
	}

	removed, err := s.store.Remove(ctx, n)
	if err != nil {
		return domain.Project{}, err
	}

	if media.IsHostedURL(removed.Image) {
		s.cleanupImage(ctx, removed.Image)
	}
	return removed, nil
}

// cleanupImage deletes a replaced or orphaned hosted image. It cannot fail
// the caller: every failure is logged and absorbed, since a stale image is
// preferable to blocking the record mutation.
func (s *ProjectService) cleanupImage(ctx context.Context, url string) {
	if s.media == nil {
		return
	}

	publicID := media.PublicIDFromURL(url)
	if publicID == "" {
		return
	}

	if _, err := s.media.Destroy(ctx, publicID); err != nil {
		log.Printf("[media] cleanup of %s failed: %v", publicID, err)
		return
	}
	log.Printf("[media] deleted image %s", publicID)
}

func parseID(id string) (int, error) {
	return strconv.Atoi(id)
}
