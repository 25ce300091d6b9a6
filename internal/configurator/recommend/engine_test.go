package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it-configurator/internal/configurator/catalog"
)

func TestScore_EnterpriseWithoutChallenges(t *testing.T) {
	engine := NewEngine()

	scores := engine.Score(&catalog.Profile{
		CompanySize:   catalog.SizeEnterprise,
		EmployeeCount: 1000,
	})

	assert.Equal(t, 2, scores[catalog.ServiceMonitoring])
	assert.Equal(t, 2, scores[catalog.ServiceBackup])
	assert.Equal(t, 0, scores[catalog.ServiceCloud])
	assert.Equal(t, 0, scores[catalog.ServiceVDI])
}

func TestScore_ChallengesAreAdditive(t *testing.T) {
	engine := NewEngine()

	scores := engine.Score(&catalog.Profile{
		Challenges: []string{ChallengeSecurity, ChallengeDowntime, ChallengeDataLoss},
	})

	// security + downtime each add one to monitoring and backup,
	// data-loss adds one more to backup.
	assert.Equal(t, 2, scores[catalog.ServiceMonitoring])
	assert.Equal(t, 3, scores[catalog.ServiceBackup])
	assert.Equal(t, 0, scores[catalog.ServiceCloud])
}

func TestScore_GreenfieldInfrastructure(t *testing.T) {
	engine := NewEngine()

	scores := engine.Score(&catalog.Profile{
		CompanySize:    catalog.SizeSmall,
		Infrastructure: []string{catalog.InfraNone},
	})

	// none -> cloud +3, vdi +2; small -> cloud +1
	assert.Equal(t, 4, scores[catalog.ServiceCloud])
	assert.Equal(t, 2, scores[catalog.ServiceVDI])
}

func TestScore_OnPremiseInfrastructure(t *testing.T) {
	engine := NewEngine()

	scores := engine.Score(&catalog.Profile{
		Infrastructure: []string{catalog.InfraOnPremise},
	})

	assert.Equal(t, 2, scores[catalog.ServiceBackup])
	assert.Equal(t, 2, scores[catalog.ServiceMonitoring])
	assert.Equal(t, 0, scores[catalog.ServiceCloud])
}

func TestScore_NilProfileScoresZero(t *testing.T) {
	engine := NewEngine()

	scores := engine.Score(nil)

	require.Len(t, scores, 4)
	for svc, score := range scores {
		assert.Zero(t, score, "service %s", svc)
	}
}

func TestRanked_OrderAndThreshold(t *testing.T) {
	engine := NewEngine()

	ranked := engine.Ranked(&catalog.Profile{
		CompanySize:    catalog.SizeSmall,
		Infrastructure: []string{catalog.InfraNone},
		Challenges:     []string{ChallengeRemoteWork},
	})

	// cloud 3+1+1=5, vdi 2+1=3; monitoring and backup stay at zero
	// and must not appear.
	require.Len(t, ranked, 2)
	assert.Equal(t, catalog.ServiceCloud, ranked[0].Service)
	assert.Equal(t, 5, ranked[0].Priority)
	assert.Equal(t, catalog.ServiceVDI, ranked[1].Service)
	assert.Equal(t, 3, ranked[1].Priority)
}

func TestRanked_TiesKeepDeclarationOrder(t *testing.T) {
	engine := NewEngine()

	ranked := engine.Ranked(&catalog.Profile{
		Challenges: []string{ChallengeSecurity},
	})

	// monitoring and backup both score 1; monitoring is declared first.
	require.Len(t, ranked, 2)
	assert.Equal(t, catalog.ServiceMonitoring, ranked[0].Service)
	assert.Equal(t, catalog.ServiceBackup, ranked[1].Service)
}

func TestCustomRuleTable(t *testing.T) {
	engine := NewEngineWithRules([]Rule{
		{Tag: "compliance", Services: []catalog.ServiceKey{catalog.ServiceBackup}},
	})

	scores := engine.Score(&catalog.Profile{Challenges: []string{"compliance", ChallengeSecurity}})

	// only the custom table fires; the default security rule is gone
	assert.Equal(t, 1, scores[catalog.ServiceBackup])
	assert.Equal(t, 0, scores[catalog.ServiceMonitoring])
}

func TestScore_DuplicateTagsNotDoubleCounted(t *testing.T) {
	engine := NewEngine()

	// Tags are a set; the engine matches rules against membership, so a
	// repeated tag cannot fire a rule twice.
	scores := engine.Score(&catalog.Profile{
		Challenges: []string{ChallengeScalability, ChallengeScalability},
	})

	assert.Equal(t, 1, scores[catalog.ServiceCloud])
}
