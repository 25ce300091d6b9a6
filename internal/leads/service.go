package leads

import (
	"context"
	"encoding/json"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/metrics"
	"it-configurator/internal/configurator/session"
)

// Repository is the persistence surface the service needs.
type Repository interface {
	Insert(ctx context.Context, lead *Lead) (int64, error)
}

// Notifier delivers the post-save emails. Delivery failures must never fail
// the save.
type Notifier interface {
	NotifyLead(ctx context.Context, lead *Lead) error
}

const savedMessage = "Your request has been submitted successfully!"

// notifyTimeout bounds the detached notification send.
const notifyTimeout = 30 * time.Second

// Service validates and persists submitted leads.
type Service struct {
	repo     Repository
	notifier Notifier
	log      logger.Logger
}

func NewService(repo Repository, notifier Notifier, log logger.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, log: log}
}

// SaveLead re-validates the submission server-side, persists it and kicks
// off notifications. Client-side checks are advisory only; this is the gate
// that counts.
func (s *Service) SaveLead(ctx context.Context, p *session.Payload) (int64, string, error) {
	if p == nil {
		return 0, "", errors.NewLeadRejectedError("Please fill in all required fields.")
	}

	if err := validation.Validate(p.Email, validation.Required, is.EmailFormat); err != nil {
		return 0, "", errors.NewLeadRejectedError("Invalid email address")
	}
	if err := validation.Validate(p.Name, validation.Required); err != nil {
		return 0, "", errors.NewLeadRejectedError("Please fill in all required fields.")
	}

	lead, err := leadFromPayload(p)
	if err != nil {
		return 0, "", err
	}

	if _, err := s.repo.Insert(ctx, lead); err != nil {
		s.log.WithError(err).Error("failed to persist lead", map[string]interface{}{
			"email": lead.Email,
		})
		return 0, "", err
	}

	metrics.LeadsSaved.Inc()
	s.log.Info("lead saved", map[string]interface{}{
		"lead_id":         lead.ID,
		"services":        lead.Services,
		"estimated_price": lead.EstimatedPrice.String(),
	})

	if s.notifier != nil {
		go s.sendNotifications(lead)
	}

	return lead.ID, savedMessage, nil
}

// sendNotifications runs detached from the request so a slow or broken mail
// path cannot delay or fail the save.
func (s *Service) sendNotifications(lead *Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := s.notifier.NotifyLead(ctx, lead); err != nil {
		s.log.WithError(err).Warn("lead notification failed", map[string]interface{}{
			"lead_id": lead.ID,
		})
	}
}

func leadFromPayload(p *session.Payload) (*Lead, error) {
	var services []string
	for name, wire := range p.Services {
		if wire.Selected {
			services = append(services, name)
		}
	}

	configuration, err := json.Marshal(p.Services)
	if err != nil {
		return nil, errors.NewValidationFailedError("configuration is not serializable", nil)
	}

	return &Lead{
		Name:           p.Name,
		Email:          p.Email,
		Company:        p.Company,
		Phone:          p.Phone,
		Services:       services,
		Configuration:  configuration,
		EstimatedPrice: p.EstimatedPrice,
		Status:         StatusNew,
	}, nil
}
