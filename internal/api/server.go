package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/sumarplus/backend/internal/models"
	"github.com/sumarplus/backend/internal/service"
)

// Server provides the HTTP JSON API.
type Server struct {
	svc    *service.Service
	logger *logrus.Logger
	mux    *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(svc *service.Service, logger *logrus.Logger) *Server {
	s := &Server{svc: svc, logger: logger, mux: http.NewServeMux()}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	return instrument(s.mux)
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// API – Campaigns
	s.mux.HandleFunc("GET /api/campaigns", s.handleListCampaigns)
	s.mux.HandleFunc("POST /api/campaigns", s.handleCreateCampaign)
	s.mux.HandleFunc("GET /api/campaigns/{campaignId}", s.handleGetCampaign)

	// API – Comments
	s.mux.HandleFunc("GET /api/campaigns/{campaignId}/comments", s.handleListComments)
	s.mux.HandleFunc("POST /api/campaigns/{campaignId}/comments", s.handleCreateComment)
	s.mux.HandleFunc("GET /api/campaigns/{campaignId}/comments/{commentId}/replies", s.handleListReplies)

	// API – Donations
	s.mux.HandleFunc("GET /api/campaigns/{campaignId}/donations", s.handleListDonations)
	s.mux.HandleFunc("POST /api/campaigns/{campaignId}/donations", s.handleCreateDonation)

	// API – Categories, admin, health
	s.mux.HandleFunc("GET /api/categories", s.handleListCategories)
	s.mux.HandleFunc("GET /api/admin/stats", s.handleGetStats)
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.Handle("GET /metrics", metricsHandler())
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Persistence failures are logged in full and surfaced as a generic 500.
func (s *Server) respondServiceError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		s.respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.WithError(err).Error(logMsg)
		s.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// pagingParams reads the page and limit query parameters. Absent or
// non-numeric values fall back to the defaults; the service clamps the pair
// again regardless of what is returned here.
func pagingParams(r *http.Request) (page, limit int) {
	page = service.DefaultPage
	limit = service.DefaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = v
	}
	return page, limit
}

// requireUserID reads the authenticated user id injected by the session
// layer in front of this API.  It writes an error response and returns ""
// when the header is absent.
func (s *Server) requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		s.respondError(w, http.StatusBadRequest, "X-User-ID header is required")
		return "", false
	}
	return userID, true
}

// ---------------------------------------------------------------------------
// Campaigns
// ---------------------------------------------------------------------------

type createCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	GoalAmount  int64  `json:"goalAmount"`
	Currency    string `json:"currency"`
	CategoryID  string `json:"categoryId"`
	CoverImage  string `json:"coverImage"`
}

func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)

	var status *models.CampaignStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		st := models.CampaignStatus(raw)
		status = &st
	}
	categoryID := r.URL.Query().Get("category")

	campaigns, pagination, err := s.svc.ListCampaigns(r.Context(), page, limit, status, categoryID)
	if err != nil {
		s.respondServiceError(w, err, "failed to list campaigns")
		return
	}
	if campaigns == nil {
		campaigns = []*models.Campaign{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"campaigns":  campaigns,
		"pagination": pagination,
	})
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := s.svc.GetCampaign(r.Context(), r.PathValue("campaignId"))
	if err != nil {
		s.respondServiceError(w, err, "failed to get campaign")
		return
	}
	s.respondJSON(w, http.StatusOK, campaign)
}

func (s *Server) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	var req createCampaignRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	campaign, err := s.svc.CreateCampaign(r.Context(), service.CreateCampaignInput{
		Title:       req.Title,
		Description: req.Description,
		GoalAmount:  req.GoalAmount,
		Currency:    req.Currency,
		OwnerID:     ownerID,
		CategoryID:  req.CategoryID,
		CoverImage:  req.CoverImage,
	})
	if err != nil {
		s.respondServiceError(w, err, "failed to create campaign")
		return
	}

	s.respondJSON(w, http.StatusCreated, campaign)
}

// ---------------------------------------------------------------------------
// Comments
// ---------------------------------------------------------------------------

type createCommentRequest struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parentId"`
	IsPublic *bool   `json:"isPublic"` // defaults to true
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)

	comments, pagination, err := s.svc.ListTopLevelComments(r.Context(), r.PathValue("campaignId"), page, limit)
	if err != nil {
		s.respondServiceError(w, err, "failed to list comments")
		return
	}
	if comments == nil {
		comments = []*models.Comment{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"comments":   comments,
		"pagination": pagination,
	})
}

func (s *Server) handleListReplies(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)

	replies, pagination, err := s.svc.ListReplies(r.Context(),
		r.PathValue("campaignId"), r.PathValue("commentId"), page, limit)
	if err != nil {
		s.respondServiceError(w, err, "failed to list replies")
		return
	}
	if replies == nil {
		replies = []*models.Comment{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"replies":    replies,
		"pagination": pagination,
	})
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := s.requireUserID(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	comment, err := s.svc.CreateComment(r.Context(), service.CreateCommentInput{
		CampaignID: r.PathValue("campaignId"),
		AuthorID:   authorID,
		ParentID:   req.ParentID,
		Content:    req.Content,
		IsPublic:   isPublic,
	})
	if err != nil {
		s.respondServiceError(w, err, "failed to create comment")
		return
	}

	s.respondJSON(w, http.StatusCreated, comment)
}

// ---------------------------------------------------------------------------
// Donations
// ---------------------------------------------------------------------------

type createDonationRequest struct {
	Amount    int64  `json:"amount"`
	Message   string `json:"message"`
	Anonymous bool   `json:"anonymous"`
}

func (s *Server) handleListDonations(w http.ResponseWriter, r *http.Request) {
	page, limit := pagingParams(r)

	donations, pagination, err := s.svc.ListDonations(r.Context(), r.PathValue("campaignId"), page, limit)
	if err != nil {
		s.respondServiceError(w, err, "failed to list donations")
		return
	}
	if donations == nil {
		donations = []*models.Donation{}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"donations":  donations,
		"pagination": pagination,
	})
}

func (s *Server) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	// Donations may be anonymous, so the user header is optional here.
	var donorID *string
	if id := r.Header.Get("X-User-ID"); id != "" && !req.Anonymous {
		donorID = &id
	}

	donation, err := s.svc.CreateDonation(r.Context(), service.CreateDonationInput{
		CampaignID: r.PathValue("campaignId"),
		DonorID:    donorID,
		Amount:     req.Amount,
		Message:    req.Message,
	})
	if err != nil {
		s.respondServiceError(w, err, "failed to create donation")
		return
	}

	s.respondJSON(w, http.StatusCreated, donation)
}

// ---------------------------------------------------------------------------
// Categories, admin stats, health
// ---------------------------------------------------------------------------

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.svc.ListCategories(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.GetPlatformStats(r.Context())
	if err != nil {
		s.respondServiceError(w, err, "failed to get platform stats")
		return
	}
	s.respondJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
