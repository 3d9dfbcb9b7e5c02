// Package memory provides in-memory implementations of the repository
// interfaces. The store backs the test suite and the STORAGE_BACKEND=memory
// development mode. Comments are held in an arena keyed by id with a
// separate parent adjacency index, so the self-referential reply structure
// never forms owning pointer cycles.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
	"go.uber.org/atomic"
)

// Store holds all entities behind one lock. Repositories returned by the
// accessor methods share the same store.
type Store struct {
	mu sync.RWMutex

	users      map[string]*models.User
	categories map[string]*models.Category
	campaigns  map[string]*models.Campaign
	donations  map[string]*models.Donation

	// comment arena plus adjacency indexes, in insertion order
	comments     map[string]*commentRecord
	children     map[string][]string // parent comment id -> child comment ids
	roots        map[string][]string // campaign id -> top-level comment ids
	donationsFor map[string][]string // campaign id -> donation ids

	seq atomic.Int64 // insertion sequence, tie-break for equal timestamps
}

type commentRecord struct {
	comment models.Comment
	seq     int64
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:        make(map[string]*models.User),
		categories:   make(map[string]*models.Category),
		campaigns:    make(map[string]*models.Campaign),
		donations:    make(map[string]*models.Donation),
		comments:     make(map[string]*commentRecord),
		children:     make(map[string][]string),
		roots:        make(map[string][]string),
		donationsFor: make(map[string][]string),
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }

// Categories returns the category repository view of the store.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s} }

// Campaigns returns the campaign repository view of the store.
func (s *Store) Campaigns() repository.CampaignRepository { return &campaignRepo{s} }

// Comments returns the comment repository view of the store.
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }

// Donations returns the donation repository view of the store.
func (s *Store) Donations() repository.DonationRepository { return &donationRepo{s} }

func ensureID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func ensureTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
