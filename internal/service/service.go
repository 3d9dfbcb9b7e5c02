package service

import (
	"github.com/sirupsen/logrus"

	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/repository"
)

// Notifier receives platform events worth announcing. Implementations must
// never block; a lost announcement is acceptable, a stalled request is not.
type Notifier interface {
	DonationReceived(campaign *models.Campaign, donation *models.Donation)
	CommentPosted(campaign *models.Campaign, comment *models.Comment)
}

// Service is the central business logic layer that holds all repositories
// and provides high-level methods for the application.
type Service struct {
	logger   *logrus.Logger
	notifier Notifier

	Users      repository.UserRepository
	Campaigns  repository.CampaignRepository
	Comments   repository.CommentRepository
	Donations  repository.DonationRepository
	Categories repository.CategoryRepository
}

// New creates a new Service with all required dependencies.
func New(logger *logrus.Logger,
	users repository.UserRepository,
	campaigns repository.CampaignRepository,
	comments repository.CommentRepository,
	donations repository.DonationRepository,
	categories repository.CategoryRepository,
) *Service {
	return &Service{
		logger: logger,
		Users:  users, Campaigns: campaigns, Comments: comments,
		Donations: donations, Categories: categories,
	}
}

// SetNotifier attaches an optional event notifier. A nil notifier disables
// announcements.
func (s *Service) SetNotifier(n Notifier) {
	s.notifier = n
}
