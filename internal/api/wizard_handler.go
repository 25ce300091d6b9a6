package api

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"it-configurator/internal/common/config"
	"it-configurator/internal/common/errors"
	"it-configurator/internal/common/logger"
	"it-configurator/internal/common/metrics"
	"it-configurator/internal/common/observability"
	"it-configurator/internal/configurator/catalog"
	"it-configurator/internal/configurator/pricing"
	"it-configurator/internal/configurator/recommend"
	"it-configurator/internal/configurator/session"
	"it-configurator/internal/configurator/submission"
	"it-configurator/internal/configurator/wizard"
	"it-configurator/internal/leads"
	"it-configurator/internal/sessions"
)

const (
	headerSessionID = "X-Session-ID"
	headerCSRFToken = "X-CSRF-Token"
)

// WizardHandler serves the wizard session endpoints consumed by the page.
type WizardHandler struct {
	cfg         *config.Config
	repo        *sessions.Repository
	saver       submission.Saver
	pricer      *pricing.Engine
	recommender *recommend.Engine
	obs         *observability.Observability
	log         logger.Logger
}

func NewWizardHandler(deps Deps) *WizardHandler {
	return &WizardHandler{
		cfg:         deps.Config,
		repo:        deps.Sessions,
		saver:       deps.Saver,
		pricer:      deps.Pricer,
		recommender: deps.Recommender,
		obs:         deps.Obs,
		log:         deps.Log,
	}
}

// run is one rehydrated wizard request: record, live store and positioned
// machine, sharing a per-run submission coordinator.
type run struct {
	record  *sessions.Record
	store   *session.Store
	machine *wizard.Machine
}

func (h *WizardHandler) loadRun(c *gin.Context, checkToken bool) (*run, bool) {
	record, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	if checkToken {
		if err := record.CheckToken(c.GetHeader(headerCSRFToken)); err != nil {
			respondError(c, err)
			return nil, false
		}
		if record.Submitted {
			respondError(c, errors.NewSubmissionLockedError())
			return nil, false
		}
	}

	store := session.FromPayload(record.State)

	coordinator := submission.NewCoordinator(h.saver, h.pricer, h.obs, h.log)
	if record.Submitted {
		coordinator.Lock()
	}

	machine, err := wizard.NewMachine(record.Variant, store, h.pricer, h.recommender, coordinator.Submit, h.log)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	machine.Restore(record.StepIndex)

	return &run{record: record, store: store, machine: machine}, true
}

// retireSession locks a just-submitted session and then removes it. The lock
// is persisted first so a failed delete still leaves the record unusable for
// a second submission.
func (h *WizardHandler) retireSession(c *gin.Context, record *sessions.Record, state *session.Payload) {
	record.Submitted = true
	record.State = state
	if err := h.repo.Save(c.Request.Context(), record); err != nil {
		h.log.WithError(err).Warn("failed to lock submitted session", map[string]interface{}{
			"session_id": record.ID,
		})
	}
	if err := h.repo.Delete(c.Request.Context(), record.ID); err != nil {
		h.log.WithError(err).Warn("failed to retire submitted session", map[string]interface{}{
			"session_id": record.ID,
		})
	}
}

func (h *WizardHandler) persist(c *gin.Context, r *run) bool {
	r.record.State = r.store.Payload()
	r.record.StepIndex = r.machine.StepIndex()
	if err := h.repo.Save(c.Request.Context(), r.record); err != nil {
		respondError(c, err)
		return false
	}
	return true
}

type serviceView struct {
	Selected    bool                   `json:"selected"`
	Recommended bool                   `json:"recommended"`
	Priority    int                    `json:"priority"`
	Config      map[string]interface{} `json:"config"`
}

func (h *WizardHandler) view(r *run) gin.H {
	services := make(map[string]serviceView, len(catalog.Keys()))
	for _, k := range catalog.Keys() {
		sel, _ := r.store.Selection(k)
		services[string(k)] = serviceView{
			Selected:    sel.Selected,
			Recommended: sel.Recommended,
			Priority:    sel.Priority,
			Config:      sel.Options.Wire(),
		}
	}
	_, display := r.store.Estimate()

	return gin.H{
		"session_id":      r.record.ID,
		"variant":         r.record.Variant,
		"step":            r.machine.Current().Name,
		"step_index":      r.machine.StepIndex(),
		"submitted":       r.record.Submitted,
		"services":        services,
		"profile":         r.store.Profile(),
		"estimated_price": display,
	}
}

// CreateSession opens a new wizard run.
func (h *WizardHandler) CreateSession(c *gin.Context) {
	var body struct {
		Variant string `json:"variant"`
	}
	// an empty body is fine, the configured default applies
	_ = c.ShouldBindJSON(&body)

	variant := body.Variant
	if variant == "" {
		variant = h.cfg.Wizard.Variant
	}
	if variant != wizard.VariantClassic && variant != wizard.VariantConversational {
		respondError(c, errors.NewValidationFailedError("unknown wizard variant", []string{"variant"}))
		return
	}

	record, err := h.repo.Create(c.Request.Context(), variant)
	if err != nil {
		respondError(c, err)
		return
	}
	metrics.WizardSessionsStarted.WithLabelValues(variant).Inc()

	respondCreated(c, gin.H{
		"session_id": record.ID,
		"csrf_token": record.CSRFToken,
		"variant":    record.Variant,
		"step_index": 0,
	})
}

// GetSession returns the current run state.
func (h *WizardHandler) GetSession(c *gin.Context) {
	r, ok := h.loadRun(c, false)
	if !ok {
		return
	}
	respondOK(c, h.view(r))
}

// SetService selects or deselects one service.
func (h *WizardHandler) SetService(c *gin.Context) {
	var body struct {
		Selected bool `json:"selected"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.NewValidationFailedError("invalid request body", nil))
		return
	}

	r, ok := h.loadRun(c, true)
	if !ok {
		return
	}

	key := catalog.ServiceKey(c.Param("key"))
	var err error
	if body.Selected {
		err = r.store.Select(key)
	} else {
		err = r.store.Deselect(key)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if h.persist(c, r) {
		respondOK(c, h.view(r))
	}
}

// SetOption applies one configuration value to a service.
func (h *WizardHandler) SetOption(c *gin.Context) {
	var body struct {
		Name  string      `json:"name"`
		Value interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		respondError(c, errors.NewValidationFailedError("invalid request body", []string{"name"}))
		return
	}

	r, ok := h.loadRun(c, true)
	if !ok {
		return
	}

	key := catalog.ServiceKey(c.Param("key"))
	if err := r.store.SetOption(key, body.Name, session.CoerceString(body.Value)); err != nil {
		respondError(c, err)
		return
	}

	if h.persist(c, r) {
		respondOK(c, h.view(r))
	}
}

// SetProfile updates the prospect profile.
func (h *WizardHandler) SetProfile(c *gin.Context) {
	var body struct {
		CompanySize    string   `json:"company_size"`
		EmployeeCount  int      `json:"employee_count"`
		Infrastructure []string `json:"infrastructure"`
		Challenges     []string `json:"challenges"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errors.NewValidationFailedError("invalid request body", nil))
		return
	}

	r, ok := h.loadRun(c, true)
	if !ok {
		return
	}

	if body.CompanySize != "" {
		if err := r.store.SetCompanySize(catalog.CompanySize(body.CompanySize)); err != nil {
			respondError(c, err)
			return
		}
	}
	r.store.SetEmployeeCount(body.EmployeeCount)
	if body.Infrastructure != nil {
		r.store.SetInfrastructure(body.Infrastructure)
	}
	if body.Challenges != nil {
		r.store.SetChallenges(body.Challenges)
	}

	if h.persist(c, r) {
		respondOK(c, h.view(r))
	}
}

// SetContact stores the contact block.
func (h *WizardHandler) SetContact(c *gin.Context) {
	var contact session.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		respondError(c, errors.NewValidationFailedError("invalid request body", nil))
		return
	}

	r, ok := h.loadRun(c, true)
	if !ok {
		return
	}

	r.store.SetContact(contact)

	if h.persist(c, r) {
		respondOK(c, h.view(r))
	}
}

// Advance moves the run one step forward. On the final step this submits
// the lead and retires the session.
func (h *WizardHandler) Advance(c *gin.Context) {
	r, ok := h.loadRun(c, true)
	if !ok {
		return
	}

	result, err := r.machine.Advance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Submitted {
		h.retireSession(c, r.record, r.store.Payload())
		respondOK(c, gin.H{
			"submitted":       true,
			"message":         result.Message,
			"estimated_price": result.Estimate,
			"summary":         result.Summary,
		})
		return
	}

	if h.persist(c, r) {
		data := h.view(r)
		data["summary"] = result.Summary
		respondOK(c, data)
	}
}

// Retreat moves the run one step back.
func (h *WizardHandler) Retreat(c *gin.Context) {
	r, ok := h.loadRun(c, true)
	if !ok {
		return
	}

	r.machine.Retreat()

	if h.persist(c, r) {
		respondOK(c, h.view(r))
	}
}

// SaveLead is the direct submission path: the full payload in one request,
// authenticated by the session's anti-forgery token.
func (h *WizardHandler) SaveLead(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, errors.NewValidationFailedError("unreadable request body", nil))
		return
	}
	if err := leads.ValidatePayloadJSON(raw); err != nil {
		respondError(c, err)
		return
	}

	var payload session.Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		respondError(c, errors.NewValidationFailedError("invalid payload", nil))
		return
	}

	record, err := h.repo.Get(c.Request.Context(), c.GetHeader(headerSessionID))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := record.CheckToken(c.GetHeader(headerCSRFToken)); err != nil {
		respondError(c, err)
		return
	}
	if record.Submitted {
		respondError(c, errors.NewSubmissionLockedError())
		return
	}

	store := session.FromPayload(&payload)
	coordinator := submission.NewCoordinator(h.saver, h.pricer, h.obs, h.log)

	message, err := coordinator.Submit(c.Request.Context(), store)
	if err != nil {
		respondError(c, err)
		return
	}

	h.retireSession(c, record, store.Payload())

	_, display := store.Estimate()
	respondOK(c, gin.H{
		"message":         message,
		"estimated_price": display,
	})
}
