package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"it-configurator/internal/configurator/catalog"
)

func TestCompute_CloudOnly(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceCloud: &catalog.CloudOptions{
			Platform:  "azure",
			Users:     10,
			StorageGB: 500,
		},
	}

	quote := engine.Compute(selections, nil)

	// 150 base + 25 per user * 10
	assert.Equal(t, int64(400), quote.Display)
	assert.True(t, quote.Total.Equal(decimal.NewFromInt(400)))
	assert.True(t, quote.PerService[catalog.ServiceCloud].Equal(decimal.NewFromInt(400)))
}

func TestCompute_CloudHighAvailability(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceCloud: &catalog.CloudOptions{
			Platform:         "aws",
			Users:            10,
			StorageGB:        100,
			HighAvailability: true,
		},
	}

	quote := engine.Compute(selections, nil)
	assert.Equal(t, int64(500), quote.Display)
}

func TestCompute_VDIPremiumWithOffice(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceVDI: &catalog.VDIOptions{
			Workplaces:  10,
			Performance: catalog.PerformancePremium,
			OS:          "windows",
			OfficeSuite: true,
		},
	}

	quote := engine.Compute(selections, nil)

	// 200 base + 35 * 10 * 2.5 + 12 * 10
	assert.Equal(t, int64(1195), quote.Display)
}

func TestCompute_MonitoringAdvanced247(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceMonitoring: &catalog.MonitoringOptions{
			Devices:        20,
			Scope:          catalog.ScopeAdvanced,
			AroundTheClock: true,
		},
	}

	quote := engine.Compute(selections, nil)

	// 100 base + 15 * 20 * 2 + 300
	assert.Equal(t, int64(1000), quote.Display)
}

func TestCompute_BackupHourlyOffsite(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceBackup: &catalog.BackupOptions{
			VolumeGB:      100,
			Frequency:     catalog.FrequencyHourly,
			RetentionDays: 30,
			Offsite:       true,
		},
	}

	quote := engine.Compute(selections, nil)

	// 120 base + 2 * 100 * 1.3 + 150
	assert.Equal(t, int64(530), quote.Display)
}

func TestCompute_UnknownTierFallsBackToFactorOne(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceVDI: &catalog.VDIOptions{
			Workplaces:  4,
			Performance: catalog.PerformanceTier("turbo"),
			OS:          "linux",
		},
	}

	quote := engine.Compute(selections, nil)

	// 200 base + 35 * 4 * 1
	assert.Equal(t, int64(340), quote.Display)
}

func TestCompute_MultipleServicesSum(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceCloud: &catalog.CloudOptions{
			Platform: "azure", Users: 10, StorageGB: 200,
		},
		catalog.ServiceBackup: &catalog.BackupOptions{
			VolumeGB: 50, Frequency: catalog.FrequencyDaily, RetentionDays: 90,
		},
	}

	quote := engine.Compute(selections, nil)

	require.Len(t, quote.PerService, 2)
	// cloud 400 + backup (120 + 2*50)
	assert.Equal(t, int64(620), quote.Display)
}

func TestCompute_EmptySelectionIsZero(t *testing.T) {
	engine := NewEngine(DefaultModel())

	quote := engine.Compute(nil, &catalog.Profile{CompanySize: catalog.SizeMedium})

	assert.Equal(t, int64(0), quote.Display)
	assert.True(t, quote.Total.IsZero())
	assert.Empty(t, quote.PerService)
}

func TestCompute_Deterministic(t *testing.T) {
	engine := NewEngine(DefaultModel())

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceCloud:      &catalog.CloudOptions{Platform: "aws", Users: 7, StorageGB: 100, HighAvailability: true},
		catalog.ServiceVDI:        &catalog.VDIOptions{Workplaces: 3, Performance: catalog.PerformanceStandard, OS: "windows"},
		catalog.ServiceMonitoring: &catalog.MonitoringOptions{Devices: 5, Scope: catalog.ScopeBasic},
		catalog.ServiceBackup:     &catalog.BackupOptions{VolumeGB: 250, Frequency: catalog.FrequencyRealtime, RetentionDays: 365, Offsite: true},
	}
	profile := &catalog.Profile{CompanySize: catalog.SizeLarge, EmployeeCount: 250}

	first := engine.Compute(selections, profile)
	for i := 0; i < 10; i++ {
		again := engine.Compute(selections, profile)
		assert.True(t, first.Total.Equal(again.Total))
		assert.Equal(t, first.Display, again.Display)
	}
}

func TestCompute_MonotonicInUsers(t *testing.T) {
	engine := NewEngine(DefaultModel())

	previous := decimal.Zero
	for users := 1; users <= 50; users += 7 {
		quote := engine.Compute(map[catalog.ServiceKey]catalog.OptionSet{
			catalog.ServiceCloud: &catalog.CloudOptions{Platform: "azure", Users: users, StorageGB: 100},
		}, nil)
		assert.True(t, quote.Total.GreaterThan(previous),
			"price must grow with user count (users=%d)", users)
		previous = quote.Total
	}
}

func TestCompute_SmallCompanyDiscount(t *testing.T) {
	model := DefaultModel()
	model.SmallCompanyDiscount = decimal.RequireFromString("0.9")
	engine := NewEngine(model)

	selections := map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceCloud: &catalog.CloudOptions{Platform: "azure", Users: 10, StorageGB: 100},
		catalog.ServiceBackup: &catalog.BackupOptions{
			VolumeGB: 50, Frequency: catalog.FrequencyDaily, RetentionDays: 30,
		},
	}

	small := engine.Compute(selections, &catalog.Profile{CompanySize: catalog.SizeSmall})
	medium := engine.Compute(selections, &catalog.Profile{CompanySize: catalog.SizeMedium})

	// only the cloud subtotal is discounted: 400*0.9 + 220 vs 400 + 220
	assert.Equal(t, int64(580), small.Display)
	assert.True(t, small.PerService[catalog.ServiceCloud].Equal(decimal.NewFromInt(360)))
	assert.True(t, small.PerService[catalog.ServiceBackup].Equal(decimal.NewFromInt(220)))
	assert.Equal(t, int64(620), medium.Display)
}

func TestCompute_DisplayRoundsHalfUp(t *testing.T) {
	engine := NewEngine(DefaultModel())

	// 120 + 2 * 1 * 1.3 = 122.6 -> 123
	quote := engine.Compute(map[catalog.ServiceKey]catalog.OptionSet{
		catalog.ServiceBackup: &catalog.BackupOptions{VolumeGB: 1, Frequency: catalog.FrequencyHourly, RetentionDays: 30},
	}, nil)

	assert.Equal(t, int64(123), quote.Display)
	assert.True(t, quote.Total.Equal(decimal.RequireFromString("122.6")))
}
