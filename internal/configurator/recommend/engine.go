// Package recommend scores services against the prospect's profile. Scores
// are additive priorities; a service is recommended once its priority is
// positive.
package recommend

import (
	"sort"

	"it-configurator/internal/configurator/catalog"
)

// Business challenge tags collected by the conversational wizard.
const (
	ChallengeCosts       = "costs"
	ChallengeSecurity    = "security"
	ChallengeRemoteWork  = "remote-work"
	ChallengeDowntime    = "downtime"
	ChallengeScalability = "scalability"
	ChallengeDataLoss    = "data-loss"
)

// Rule maps one challenge tag to the services it speaks for. Each matched
// rule adds one point per named service.
type Rule struct {
	Tag      string
	Services []catalog.ServiceKey
}

// DefaultRules returns the rule table used by the conversational wizard.
func DefaultRules() []Rule {
	return []Rule{
		{ChallengeCosts, []catalog.ServiceKey{catalog.ServiceCloud, catalog.ServiceVDI}},
		{ChallengeSecurity, []catalog.ServiceKey{catalog.ServiceMonitoring, catalog.ServiceBackup}},
		{ChallengeRemoteWork, []catalog.ServiceKey{catalog.ServiceVDI, catalog.ServiceCloud}},
		{ChallengeDowntime, []catalog.ServiceKey{catalog.ServiceMonitoring, catalog.ServiceBackup}},
		{ChallengeScalability, []catalog.ServiceKey{catalog.ServiceCloud}},
		{ChallengeDataLoss, []catalog.ServiceKey{catalog.ServiceBackup}},
	}
}

// Recommendation is one scored service.
type Recommendation struct {
	Service  catalog.ServiceKey
	Priority int
}

// Engine derives service recommendations from a profile.
type Engine struct {
	rules []Rule
}

func NewEngine() *Engine {
	return &Engine{rules: DefaultRules()}
}

// NewEngineWithRules builds an engine over a custom rule table.
func NewEngineWithRules(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Score computes the priority of every service for the given profile. All
// services appear in the result, including those scored zero.
func (e *Engine) Score(profile *catalog.Profile) map[catalog.ServiceKey]int {
	scores := make(map[catalog.ServiceKey]int, len(catalog.Keys()))
	for _, k := range catalog.Keys() {
		scores[k] = 0
	}
	if profile == nil {
		return scores
	}

	for _, rule := range e.rules {
		if !profile.HasChallenge(rule.Tag) {
			continue
		}
		for _, svc := range rule.Services {
			scores[svc]++
		}
	}

	switch profile.CompanySize {
	case catalog.SizeSmall:
		scores[catalog.ServiceCloud]++
	case catalog.SizeEnterprise:
		scores[catalog.ServiceMonitoring] += 2
		scores[catalog.ServiceBackup] += 2
	}

	if profile.HasInfrastructure(catalog.InfraNone) {
		scores[catalog.ServiceCloud] += 3
		scores[catalog.ServiceVDI] += 2
	}
	if profile.HasInfrastructure(catalog.InfraOnPremise) {
		scores[catalog.ServiceBackup] += 2
		scores[catalog.ServiceMonitoring] += 2
	}

	return scores
}

// Ranked returns the recommended services (priority > 0) ordered by priority
// descending. Ties keep catalog declaration order so rankings are stable.
func (e *Engine) Ranked(profile *catalog.Profile) []Recommendation {
	scores := e.Score(profile)

	ranked := make([]Recommendation, 0, len(scores))
	for _, k := range catalog.Keys() {
		if scores[k] > 0 {
			ranked = append(ranked, Recommendation{Service: k, Priority: scores[k]})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})
	return ranked
}
