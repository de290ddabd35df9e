package listing

import (
	"fmt"

	"github.com/mgallina/casaviva/internal/images"
)

// Service coordinates listing rows with their picture blobs. Row
// writes stay transactional inside the repository; blob writes happen
// before the transaction and are compensated if it fails.
type Service struct {
	repo  *Repository
	blobs *images.Store
}

// NewService creates a listing service.
func NewService(repo *Repository, blobs *images.Store) *Service {
	return &Service{repo: repo, blobs: blobs}
}

// Create stores the picture files and inserts the listing with the
// generated blob names. If the insert fails the fresh blobs are
// removed again.
func (s *Service) Create(l *Listing, imageFiles []string) (*Listing, error) {
	if len(imageFiles) > MaxImages {
		return nil, fmt.Errorf("at most %d images allowed, got %d", MaxImages, len(imageFiles))
	}

	names, err := s.saveAll(imageFiles)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(l, names)
	if err != nil {
		s.blobs.DeleteAll(names)
		return nil, fmt.Errorf("saving listing: %w", err)
	}

	return created, nil
}

// Update rewrites the listing fields. An empty imageFiles slice keeps
// the stored pictures untouched; a non-empty one replaces the whole
// set, removing the superseded blobs once the transaction commits.
func (s *Service) Update(l *Listing, imageFiles []string) error {
	if len(imageFiles) > MaxImages {
		return fmt.Errorf("at most %d images allowed, got %d", MaxImages, len(imageFiles))
	}

	names, err := s.saveAll(imageFiles)
	if err != nil {
		return err
	}

	replaced, err := s.repo.Update(l, names)
	if err != nil {
		s.blobs.DeleteAll(names)
		return err
	}

	s.blobs.DeleteAll(replaced)
	return nil
}

func (s *Service) saveAll(files []string) ([]string, error) {
	var names []string
	for _, f := range files {
		name, err := s.blobs.Save(f)
		if err != nil {
			s.blobs.DeleteAll(names)
			return nil, fmt.Errorf("storing image: %w", err)
		}
		names = append(names, name)
	}
	return names, nil
}
