package request

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"car-rental/pkg/config"
	"car-rental/pkg/email"
	"car-rental/pkg/events"
	"car-rental/pkg/logger"
	"car-rental/pkg/model"
	requestRepo "car-rental/service-api/internal/repository/request"

	"github.com/google/uuid"
)

// ErrInvalidDates is returned when the end date precedes the start date
var ErrInvalidDates = errors.New("end date is before start date")

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service defines the rental request service interface
type Service interface {
	Submit(ctx context.Context, req *model.CreateRentalRequestRequest, clientIP string) (*model.RentalRequest, error)
	List(ctx context.Context, page, pageSize int) (*model.RentalRequestListResponse, error)
}

type service struct {
	repo      requestRepo.Repository
	email     email.Provider
	publisher events.Publisher
	config    *config.Config
}

// NewService creates a new rental request service
func NewService(
	repo requestRepo.Repository,
	emailProvider email.Provider,
	publisher events.Publisher,
	cfg *config.Config,
) Service {
	return &service{
		repo:      repo,
		email:     emailProvider,
		publisher: publisher,
		config:    cfg,
	}
}

// Submit stores a public request form entry and tells the admin about it
func (s *service) Submit(ctx context.Context, req *model.CreateRentalRequestRequest, clientIP string) (*model.RentalRequest, error) {
	if req.EndDate < req.StartDate {
		return nil, ErrInvalidDates
	}

	rentalRequest := &model.RentalRequest{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Vehicle:   strings.TrimSpace(req.Vehicle),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Message:   strings.TrimSpace(req.Message),
		ClientIP:  clientIP,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, rentalRequest); err != nil {
		return nil, fmt.Errorf("failed to store rental request: %w", err)
	}

	s.notifyAdmin(ctx, rentalRequest)

	return rentalRequest, nil
}

// List returns a page of requests, newest first
func (s *service) List(ctx context.Context, page, pageSize int) (*model.RentalRequestListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	requests, total, err := s.repo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list rental requests: %w", err)
	}

	return &model.RentalRequestListResponse{
		Requests:   requests,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// notifyAdmin emails, texts and publishes the new request. The request is
// already stored, so failures are only logged.
func (s *service) notifyAdmin(ctx context.Context, r *model.RentalRequest) {
	data := email.RequestReceivedData{
		TemplateData: email.TemplateData{
			AppName: s.config.App.Name,
			AppURL:  s.config.App.BaseURL,
		},
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Vehicle:   r.Vehicle,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Message:   r.Message,
	}

	if recipients := s.config.Admin.Recipients(); len(recipients) > 0 {
		err := s.email.SendTemplateEmail(ctx, recipients, email.TemplateRequestReceived, data)
		if err != nil {
			logger.Error(err, "failed to email admin about rental request")
		}
	}

	sms := fmt.Sprintf("New rental request: %s %s, %s to %s", r.Name, r.Phone, r.StartDate, r.EndDate)
	if err := email.SendSMS(ctx, s.email, s.config.Admin.SMSAddresses, sms); err != nil {
		logger.Error(err, "failed to text admin about rental request")
	}

	event := model.NewEvent("", model.EventRequestCreated, fmt.Sprintf("Rental request from %s", r.Name), map[string]string{
		"request_id": r.ID.String(),
		"email":      r.Email,
		"start_date": r.StartDate,
		"end_date":   r.EndDate,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger.Error(err, "failed to publish rental request event")
	}
}
