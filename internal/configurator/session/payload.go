package session

import (
	"strconv"

	"github.com/shopspring/decimal"

	"it-configurator/internal/configurator/catalog"
)

// WireSelection is the per-service wire shape shared with the page and the
// lead store.
type WireSelection struct {
	Selected    bool                   `json:"selected"`
	Recommended bool                   `json:"recommended"`
	Priority    int                    `json:"priority"`
	Config      map[string]interface{} `json:"config"`
}

// Payload is the full submission document: contact data, every service with
// its configuration, the prospect profile and the price estimate.
type Payload struct {
	Name           string                   `json:"name"`
	Email          string                   `json:"email"`
	Company        string                   `json:"company,omitempty"`
	Phone          string                   `json:"phone,omitempty"`
	Message        string                   `json:"message,omitempty"`
	PrivacyConsent bool                     `json:"privacy_consent"`
	Services       map[string]WireSelection `json:"services"`
	Profile        *catalog.Profile         `json:"profile,omitempty"`
	EstimatedPrice decimal.Decimal          `json:"estimated_price"`
}

// Payload renders the store in wire form. Deselected services are included
// with their retained configuration, so a parsed payload reproduces the
// store exactly.
func (s *Store) Payload() *Payload {
	services := make(map[string]WireSelection, len(s.selections))
	for _, k := range catalog.Keys() {
		sel := s.selections[k]
		services[string(k)] = WireSelection{
			Selected:    sel.Selected,
			Recommended: sel.Recommended,
			Priority:    sel.Priority,
			Config:      sel.Options.Wire(),
		}
	}

	profile := s.profile
	return &Payload{
		Name:           s.contact.Name,
		Email:          s.contact.Email,
		Company:        s.contact.Company,
		Phone:          s.contact.Phone,
		Message:        s.contact.Message,
		PrivacyConsent: s.contact.PrivacyConsent,
		Services:       services,
		Profile:        &profile,
		EstimatedPrice: s.estimate,
	}
}

// FromPayload rebuilds a store from wire form. Unknown service keys and
// option names are dropped silently; everything recognizable is restored.
func FromPayload(p *Payload) *Store {
	s := NewStore()
	if p == nil {
		return s
	}

	for name, wire := range p.Services {
		sel, ok := s.selections[catalog.ServiceKey(name)]
		if !ok {
			continue
		}
		sel.Selected = wire.Selected
		sel.Recommended = wire.Recommended
		sel.Priority = wire.Priority
		for key, value := range wire.Config {
			sel.Options.Set(key, CoerceString(value))
		}
	}

	if p.Profile != nil {
		s.profile = *p.Profile
	}
	s.contact = Contact{
		Name:           p.Name,
		Email:          p.Email,
		Company:        p.Company,
		Phone:          p.Phone,
		Message:        p.Message,
		PrivacyConsent: p.PrivacyConsent,
	}
	s.estimate = p.EstimatedPrice
	s.estimateDisplay = p.EstimatedPrice.Round(0).IntPart()
	return s
}

// CoerceString normalizes JSON scalar values into the option setter's text
// form. Page inputs deliver strings; JSON round-trips deliver numbers and
// booleans.
func CoerceString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}
