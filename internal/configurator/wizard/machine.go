// Package wizard drives a configurator run through its ordered steps,
// enforcing per-step gates and firing entry effects.
package wizard

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/metrics"
	"it-configurator/internal/configurator/catalog"
	"it-configurator/internal/configurator/pricing"
	"it-configurator/internal/configurator/recommend"
	"it-configurator/internal/configurator/session"
)

// SubmitFunc hands the finished run to the submission layer and returns the
// customer-facing confirmation message.
type SubmitFunc func(ctx context.Context, store *session.Store) (string, error)

// Result describes the machine state after a transition.
type Result struct {
	Step      string           `json:"step"`
	StepIndex int              `json:"step_index"`
	StepCount int              `json:"step_count"`
	Terminal  bool             `json:"terminal"`
	Estimate  int64            `json:"estimated_price"`
	Summary   []SummaryService `json:"summary,omitempty"`
	Submitted bool             `json:"submitted"`
	Message   string           `json:"message,omitempty"`
}

// Machine walks one session through a step table. Not safe for concurrent
// use; a session is driven by one request at a time.
type Machine struct {
	steps       []Step
	idx         int
	store       *session.Store
	pricer      *pricing.Engine
	recommender *recommend.Engine
	submit      SubmitFunc
	log         logger.Logger

	summary  []SummaryService
	watching bool
}

// NewMachine builds a machine for the named variant positioned at the first
// step.
func NewMachine(variant string, store *session.Store, pricer *pricing.Engine, recommender *recommend.Engine, submit SubmitFunc, log logger.Logger) (*Machine, error) {
	if variant != VariantClassic && variant != VariantConversational {
		return nil, fmt.Errorf("unknown wizard variant %q", variant)
	}
	return &Machine{
		steps:       stepsForVariant(variant),
		store:       store,
		pricer:      pricer,
		recommender: recommender,
		submit:      submit,
		log:         log,
	}, nil
}

// Restore repositions the machine after a session reload. Stateless entry
// effects are replayed so the price observer and summary come back, but
// recommendations are not recomputed: card choices made on the step must
// survive the reload.
func (m *Machine) Restore(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.steps) {
		idx = len(m.steps) - 1
	}
	m.idx = idx
	for _, effect := range m.steps[m.idx].OnEnter {
		if effect != EffectRecommend {
			m.runEffect(effect)
		}
	}
}

// StepIndex returns the current position.
func (m *Machine) StepIndex() int { return m.idx }

// Current returns the current step.
func (m *Machine) Current() Step { return m.steps[m.idx] }

// Advance moves one step forward if the current step's gates hold. On a
// terminal step it submits instead.
func (m *Machine) Advance(ctx context.Context) (*Result, error) {
	current := m.steps[m.idx]

	if err := m.checkGates(current); err != nil {
		metrics.WizardValidationFailures.WithLabelValues(current.Name).Inc()
		return nil, err
	}

	if current.Terminal {
		message, err := m.submit(ctx, m.store)
		if err != nil {
			return nil, err
		}
		m.log.Info("wizard run submitted", map[string]interface{}{
			"step": current.Name,
		})
		result := m.result()
		result.Submitted = true
		result.Message = message
		return result, nil
	}

	m.idx++
	next := m.steps[m.idx]
	m.runEffects(next)
	metrics.WizardStepsAdvanced.WithLabelValues(next.Name).Inc()
	return m.result(), nil
}

// Retreat moves one step back. Backward moves never validate; state is kept
// so the customer can fix and return.
func (m *Machine) Retreat() *Result {
	if m.idx > 0 {
		m.idx--
	}
	return m.result()
}

func (m *Machine) result() *Result {
	_, display := m.store.Estimate()
	return &Result{
		Step:      m.steps[m.idx].Name,
		StepIndex: m.idx,
		StepCount: len(m.steps),
		Terminal:  m.steps[m.idx].Terminal,
		Estimate:  display,
		Summary:   m.summary,
	}
}

func (m *Machine) runEffects(step Step) {
	for _, effect := range step.OnEnter {
		m.runEffect(effect)
	}
}

func (m *Machine) runEffect(effect Effect) {
	switch effect {
	case EffectRecommend:
		m.store.SetRecommendations(m.recommender.Score(m.store.Profile()))
	case EffectWatchPrice:
		if !m.watching {
			m.store.Subscribe(func(s *session.Store) {
				quote := m.pricer.Compute(s.SelectedOptions(), s.Profile())
				s.SetEstimate(quote.Total, quote.Display)
			})
			m.watching = true
		}
		m.recompute()
	case EffectSummarize:
		m.recompute()
		m.summary = buildSummary(m.store)
	}
}

func (m *Machine) recompute() {
	quote := m.pricer.Compute(m.store.SelectedOptions(), m.store.Profile())
	m.store.SetEstimate(quote.Total, quote.Display)
}

func (m *Machine) checkGates(step Step) error {
	for _, req := range step.Requires {
		switch req {
		case RequireCompanySize:
			if !m.store.Profile().CompanySize.Valid() {
				return errors.NewValidationFailedError("Please tell us your company size", []string{"company_size"})
			}
		case RequireInfrastructure:
			if len(m.store.Profile().Infrastructure) == 0 {
				return errors.NewValidationFailedError("Please describe your current infrastructure", []string{"infrastructure"})
			}
		case RequireChallenges:
			if len(m.store.Profile().Challenges) == 0 {
				return errors.NewValidationFailedError("Please pick at least one challenge", []string{"challenges"})
			}
		case RequireServiceSelected:
			if len(m.store.SelectedKeys()) == 0 {
				return errors.NewValidationFailedError("Please select at least one service", []string{"services"})
			}
		case RequireConfigComplete:
			missing := m.store.MissingOptions()
			if len(missing) > 0 {
				var fields []string
				for _, k := range catalog.Keys() {
					fields = append(fields, missing[k]...)
				}
				return errors.NewValidationFailedError(
					fmt.Sprintf("Please complete the configuration: %s", strings.Join(fields, ", ")),
					fields,
				)
			}
		case RequireContact:
			if err := checkContact(m.store.Contact()); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkContact(c session.Contact) error {
	var fields []string
	if strings.TrimSpace(c.Name) == "" {
		fields = append(fields, "name")
	}
	if validation.Validate(strings.TrimSpace(c.Email), validation.Required, is.EmailFormat) != nil {
		fields = append(fields, "email")
	}
	if !c.PrivacyConsent {
		fields = append(fields, "privacy_consent")
	}
	if len(fields) > 0 {
		return errors.NewValidationFailedError("Please fill in the required contact fields", fields)
	}
	return nil
}
