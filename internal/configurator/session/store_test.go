package session

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it-configurator/internal/configurator/catalog"
)

func TestSelectAndDeselect(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.Select(catalog.ServiceCloud))
	sel, ok := store.Selection(catalog.ServiceCloud)
	require.True(t, ok)
	assert.True(t, sel.Selected)

	require.NoError(t, store.Deselect(catalog.ServiceCloud))
	assert.False(t, sel.Selected)

	err := store.Select(catalog.ServiceKey("firewall"))
	assert.Error(t, err)
}

func TestDeselectPreservesOptions(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.Select(catalog.ServiceVDI))
	require.NoError(t, store.SetOption(catalog.ServiceVDI, catalog.OptVDIUsers, "25"))
	require.NoError(t, store.SetOption(catalog.ServiceVDI, catalog.OptVDIPerformance, "premium"))

	require.NoError(t, store.Deselect(catalog.ServiceVDI))
	require.NoError(t, store.Select(catalog.ServiceVDI))

	sel, _ := store.Selection(catalog.ServiceVDI)
	opts := sel.Options.(*catalog.VDIOptions)
	assert.Equal(t, 25, opts.Workplaces)
	assert.Equal(t, catalog.PerformancePremium, opts.Performance)
}

func TestObserversFireSynchronously(t *testing.T) {
	store := NewStore()

	var calls int
	store.Subscribe(func(s *Store) {
		calls++
	})

	require.NoError(t, store.Select(catalog.ServiceBackup))
	assert.Equal(t, 1, calls)

	require.NoError(t, store.SetOption(catalog.ServiceBackup, catalog.OptBackupVolume, "100"))
	assert.Equal(t, 2, calls)

	require.NoError(t, store.Deselect(catalog.ServiceBackup))
	assert.Equal(t, 3, calls)
}

func TestSetRecommendationsPreselects(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Select(catalog.ServiceVDI))

	store.SetRecommendations(map[catalog.ServiceKey]int{
		catalog.ServiceMonitoring: 2,
		catalog.ServiceBackup:     2,
	})

	mon, _ := store.Selection(catalog.ServiceMonitoring)
	assert.True(t, mon.Recommended)
	assert.True(t, mon.Selected)
	assert.Equal(t, 2, mon.Priority)

	// manual selections survive a recommendation pass
	vdi, _ := store.Selection(catalog.ServiceVDI)
	assert.True(t, vdi.Selected)
	assert.False(t, vdi.Recommended)
}

func TestSetRecommendationsKeepsExplicitDeselection(t *testing.T) {
	store := NewStore()
	scores := map[catalog.ServiceKey]int{
		catalog.ServiceMonitoring: 2,
		catalog.ServiceBackup:     2,
	}

	store.SetRecommendations(scores)
	require.NoError(t, store.Deselect(catalog.ServiceBackup))

	// a second pass with the same profile must not undo the choice
	store.SetRecommendations(scores)

	backup, _ := store.Selection(catalog.ServiceBackup)
	assert.False(t, backup.Selected)
	assert.True(t, backup.Recommended)

	mon, _ := store.Selection(catalog.ServiceMonitoring)
	assert.True(t, mon.Selected)
}

func TestCompanySizeDerivesHeadcount(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.SetCompanySize(catalog.SizeMedium))
	assert.Equal(t, 50, store.Profile().EmployeeCount)

	// explicit headcount wins over a later size change
	store.SetEmployeeCount(75)
	require.NoError(t, store.SetCompanySize(catalog.SizeLarge))
	assert.Equal(t, 75, store.Profile().EmployeeCount)

	assert.Error(t, store.SetCompanySize(catalog.CompanySize("galactic")))
}

func TestToggleTagsBehaveAsSet(t *testing.T) {
	store := NewStore()

	store.ToggleChallenge("security")
	store.ToggleChallenge("downtime")
	store.ToggleChallenge("security")

	assert.Equal(t, []string{"downtime"}, store.Profile().Challenges)

	store.ToggleInfrastructure(catalog.InfraNone)
	assert.True(t, store.Profile().HasInfrastructure(catalog.InfraNone))
}

func TestMissingOptionsOnlyForSelected(t *testing.T) {
	store := NewStore()

	require.NoError(t, store.Select(catalog.ServiceCloud))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudType, "azure"))

	missing := store.MissingOptions()
	require.Contains(t, missing, catalog.ServiceCloud)
	assert.ElementsMatch(t, []string{catalog.OptCloudUsers, catalog.OptCloudStorage}, missing[catalog.ServiceCloud])

	// unselected services never block
	assert.NotContains(t, missing, catalog.ServiceBackup)

	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudUsers, "10"))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudStorage, "500"))
	assert.Empty(t, store.MissingOptions())
}

func TestPayloadRoundTrip(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Select(catalog.ServiceCloud))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudType, "azure"))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudUsers, "10"))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudStorage, "500"))
	require.NoError(t, store.SetOption(catalog.ServiceCloud, catalog.OptCloudHA, "1"))

	// configured then deselected: the payload must carry the config anyway
	require.NoError(t, store.Select(catalog.ServiceBackup))
	require.NoError(t, store.SetOption(catalog.ServiceBackup, catalog.OptBackupVolume, "250"))
	require.NoError(t, store.Deselect(catalog.ServiceBackup))

	require.NoError(t, store.SetCompanySize(catalog.SizeSmall))
	store.ToggleChallenge("costs")
	store.SetContact(Contact{Name: "Jo Example", Email: "jo@example.com", PrivacyConsent: true})
	store.SetEstimate(decimal.RequireFromString("400"), 400)

	raw, err := json.Marshal(store.Payload())
	require.NoError(t, err)

	var parsed Payload
	require.NoError(t, json.Unmarshal(raw, &parsed))
	restored := FromPayload(&parsed)

	cloud, _ := restored.Selection(catalog.ServiceCloud)
	assert.True(t, cloud.Selected)
	opts := cloud.Options.(*catalog.CloudOptions)
	assert.Equal(t, "azure", opts.Platform)
	assert.Equal(t, 10, opts.Users)
	assert.Equal(t, 500, opts.StorageGB)
	assert.True(t, opts.HighAvailability)

	backup, _ := restored.Selection(catalog.ServiceBackup)
	assert.False(t, backup.Selected)
	assert.Equal(t, 250, backup.Options.(*catalog.BackupOptions).VolumeGB)

	assert.Equal(t, catalog.SizeSmall, restored.Profile().CompanySize)
	assert.Equal(t, 10, restored.Profile().EmployeeCount)
	assert.Equal(t, "jo@example.com", restored.Contact().Email)
	assert.True(t, restored.Contact().PrivacyConsent)

	total, display := restored.Estimate()
	assert.True(t, total.Equal(decimal.NewFromInt(400)))
	assert.Equal(t, int64(400), display)
}

func TestFromPayloadDropsUnknownServices(t *testing.T) {
	restored := FromPayload(&Payload{
		Services: map[string]WireSelection{
			"mainframe": {Selected: true},
			"cloud":     {Selected: true, Config: map[string]interface{}{"cloud_users": float64(3)}},
		},
	})

	assert.Equal(t, []catalog.ServiceKey{catalog.ServiceCloud}, restored.SelectedKeys())
	cloud, _ := restored.Selection(catalog.ServiceCloud)
	assert.Equal(t, 3, cloud.Options.(*catalog.CloudOptions).Users)
}
