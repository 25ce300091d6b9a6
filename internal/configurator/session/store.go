// Package session holds the in-progress state of one configurator run: which
// services are selected, how they are configured, who the prospect is, and
// the latest price estimate.
package session

import (
	"github.com/shopspring/decimal"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/configurator/catalog"
)

// Contact is the prospect's submitted contact data.
type Contact struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company,omitempty"`
	Phone          string `json:"phone,omitempty"`
	Message        string `json:"message,omitempty"`
	PrivacyConsent bool   `json:"privacy_consent"`
}

// Selection tracks one service. Options are retained across deselection so a
// returning customer finds their configuration intact.
type Selection struct {
	Selected    bool
	Recommended bool
	Priority    int
	Options     catalog.OptionSet
}

// Observer is called synchronously after every mutation that can change the
// price estimate.
type Observer func(*Store)

// Store is the single source of truth for a wizard run. It is not safe for
// concurrent use; each run is driven by one request at a time.
type Store struct {
	selections map[catalog.ServiceKey]*Selection
	profile    catalog.Profile
	contact    Contact

	estimate        decimal.Decimal
	estimateDisplay int64

	observers []Observer
}

// NewStore returns a store with every catalog service present, deselected
// and unconfigured.
func NewStore() *Store {
	s := &Store{selections: make(map[catalog.ServiceKey]*Selection, len(catalog.Keys()))}
	for _, k := range catalog.Keys() {
		s.selections[k] = &Selection{Options: catalog.NewOptionSet(k)}
	}
	return s
}

// Subscribe registers an observer. Observers fire in registration order,
// on the mutating goroutine, before the mutator returns.
func (s *Store) Subscribe(obs Observer) {
	s.observers = append(s.observers, obs)
}

func (s *Store) notify() {
	for _, obs := range s.observers {
		obs(s)
	}
}

// Select marks a service as chosen.
func (s *Store) Select(key catalog.ServiceKey) error {
	sel, ok := s.selections[key]
	if !ok {
		return errors.NewValidationFailedError("unknown service", []string{string(key)})
	}
	sel.Selected = true
	s.notify()
	return nil
}

// Deselect unmarks a service. Its options stay as configured.
func (s *Store) Deselect(key catalog.ServiceKey) error {
	sel, ok := s.selections[key]
	if !ok {
		return errors.NewValidationFailedError("unknown service", []string{string(key)})
	}
	sel.Selected = false
	s.notify()
	return nil
}

// SetOption applies one configuration value to a service. Unknown option
// names are ignored; the wire vocabulary may outgrow this build.
func (s *Store) SetOption(key catalog.ServiceKey, name, value string) error {
	sel, ok := s.selections[key]
	if !ok {
		return errors.NewValidationFailedError("unknown service", []string{string(key)})
	}
	sel.Options.Set(name, value)
	s.notify()
	return nil
}

// SetRecommendations applies priority scores. A service is pre-selected only
// the first time it becomes recommended; once the customer has seen the card,
// their selection state is theirs, so a later pass never re-selects a service
// they deselected.
func (s *Store) SetRecommendations(scores map[catalog.ServiceKey]int) {
	for _, k := range catalog.Keys() {
		sel := s.selections[k]
		recommended := scores[k] > 0
		if recommended && !sel.Recommended {
			sel.Selected = true
		}
		sel.Priority = scores[k]
		sel.Recommended = recommended
	}
	s.notify()
}

// SetCompanySize records the size bucket and, when the prospect gave no
// explicit headcount, derives one from the bucket.
func (s *Store) SetCompanySize(size catalog.CompanySize) error {
	if !size.Valid() {
		return errors.NewValidationFailedError("unknown company size", []string{string(size)})
	}
	s.profile.CompanySize = size
	if s.profile.EmployeeCount == 0 {
		s.profile.EmployeeCount = size.DefaultEmployeeCount()
	}
	return nil
}

// SetEmployeeCount overrides the derived headcount.
func (s *Store) SetEmployeeCount(n int) {
	if n > 0 {
		s.profile.EmployeeCount = n
	}
}

// ToggleInfrastructure adds or removes an infrastructure tag. Tags behave
// as a set.
func (s *Store) ToggleInfrastructure(tag string) {
	s.profile.Infrastructure = toggleTag(s.profile.Infrastructure, tag)
}

// ToggleChallenge adds or removes a business challenge tag.
func (s *Store) ToggleChallenge(tag string) {
	s.profile.Challenges = toggleTag(s.profile.Challenges, tag)
}

// SetInfrastructure replaces the infrastructure tags, deduplicated.
func (s *Store) SetInfrastructure(tags []string) {
	s.profile.Infrastructure = dedupe(tags)
}

// SetChallenges replaces the challenge tags, deduplicated.
func (s *Store) SetChallenges(tags []string) {
	s.profile.Challenges = dedupe(tags)
}

func dedupe(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok || t == "" {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func toggleTag(tags []string, tag string) []string {
	for i, t := range tags {
		if t == tag {
			return append(tags[:i], tags[i+1:]...)
		}
	}
	return append(tags, tag)
}

// SetContact replaces the contact block.
func (s *Store) SetContact(c Contact) {
	s.contact = c
}

// SetEstimate records the latest computed price. Estimates are written by
// price observers, so this mutator does not notify.
func (s *Store) SetEstimate(total decimal.Decimal, display int64) {
	s.estimate = total
	s.estimateDisplay = display
}

// --- Accessors ---

// Selection returns the tracked state for a service key.
func (s *Store) Selection(key catalog.ServiceKey) (*Selection, bool) {
	sel, ok := s.selections[key]
	return sel, ok
}

// SelectedKeys returns the selected services in catalog declaration order.
func (s *Store) SelectedKeys() []catalog.ServiceKey {
	var keys []catalog.ServiceKey
	for _, k := range catalog.Keys() {
		if s.selections[k].Selected {
			keys = append(keys, k)
		}
	}
	return keys
}

// SelectedOptions returns the option sets of the selected services, the
// shape the pricing engine consumes.
func (s *Store) SelectedOptions() map[catalog.ServiceKey]catalog.OptionSet {
	out := make(map[catalog.ServiceKey]catalog.OptionSet)
	for _, k := range catalog.Keys() {
		if sel := s.selections[k]; sel.Selected {
			out[k] = sel.Options
		}
	}
	return out
}

// MissingOptions lists, per selected service, the required option keys still
// unset. An empty result means the configuration step is complete.
func (s *Store) MissingOptions() map[catalog.ServiceKey][]string {
	missing := make(map[catalog.ServiceKey][]string)
	for _, k := range catalog.Keys() {
		if sel := s.selections[k]; sel.Selected {
			if m := sel.Options.Missing(); len(m) > 0 {
				missing[k] = m
			}
		}
	}
	return missing
}

// Profile returns the prospect profile.
func (s *Store) Profile() *catalog.Profile {
	return &s.profile
}

// Contact returns the contact block.
func (s *Store) Contact() Contact {
	return s.contact
}

// Estimate returns the last recorded price: full precision and the rounded
// display value.
func (s *Store) Estimate() (decimal.Decimal, int64) {
	return s.estimate, s.estimateDisplay
}
