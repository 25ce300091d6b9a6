// Package pricing computes monthly price estimates for a set of configured
// services. Estimates are advisory; the engine never rejects input.
package pricing

import (
	"github.com/shopspring/decimal"

	"it-configurator/internal/configurator/catalog"
)

// Model holds every rate the engine uses. All published estimates come from
// one model instance so the wizard and the saved lead can never disagree.
type Model struct {
	CloudBase        decimal.Decimal
	CloudPerUser     decimal.Decimal
	HighAvailability decimal.Decimal

	VDIBase       decimal.Decimal
	VDIPerUser    decimal.Decimal
	VDITierFactor map[catalog.PerformanceTier]decimal.Decimal
	OfficePerUser decimal.Decimal

	MonitoringBase      decimal.Decimal
	MonitoringPerDevice decimal.Decimal
	ScopeFactor         map[catalog.MonitoringScope]decimal.Decimal
	AroundTheClock      decimal.Decimal

	BackupBase      decimal.Decimal
	BackupPerGB     decimal.Decimal
	FrequencyFactor map[catalog.BackupFrequency]decimal.Decimal
	OffsiteReplica  decimal.Decimal

	// SmallCompanyDiscount scales the cloud subtotal for small-company
	// prospects. 1 disables the discount.
	SmallCompanyDiscount decimal.Decimal
}

// DefaultModel returns the published rate card.
func DefaultModel() Model {
	return Model{
		CloudBase:        decimal.NewFromInt(150),
		CloudPerUser:     decimal.NewFromInt(25),
		HighAvailability: decimal.NewFromInt(100),

		VDIBase:    decimal.NewFromInt(200),
		VDIPerUser: decimal.NewFromInt(35),
		VDITierFactor: map[catalog.PerformanceTier]decimal.Decimal{
			catalog.PerformanceBasic:    decimal.NewFromInt(1),
			catalog.PerformanceStandard: decimal.RequireFromString("1.5"),
			catalog.PerformancePremium:  decimal.RequireFromString("2.5"),
		},
		OfficePerUser: decimal.NewFromInt(12),

		MonitoringBase:      decimal.NewFromInt(100),
		MonitoringPerDevice: decimal.NewFromInt(15),
		ScopeFactor: map[catalog.MonitoringScope]decimal.Decimal{
			catalog.ScopeBasic:    decimal.NewFromInt(1),
			catalog.ScopeStandard: decimal.RequireFromString("1.5"),
			catalog.ScopeAdvanced: decimal.NewFromInt(2),
		},
		AroundTheClock: decimal.NewFromInt(300),

		BackupBase:  decimal.NewFromInt(120),
		BackupPerGB: decimal.NewFromInt(2),
		FrequencyFactor: map[catalog.BackupFrequency]decimal.Decimal{
			catalog.FrequencyDaily:    decimal.NewFromInt(1),
			catalog.FrequencyHourly:   decimal.RequireFromString("1.3"),
			catalog.FrequencyRealtime: decimal.RequireFromString("1.8"),
		},
		OffsiteReplica: decimal.NewFromInt(150),

		SmallCompanyDiscount: decimal.NewFromInt(1),
	}
}

func (m Model) tierFactor(t catalog.PerformanceTier) decimal.Decimal {
	if f, ok := m.VDITierFactor[t]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

func (m Model) scopeFactor(s catalog.MonitoringScope) decimal.Decimal {
	if f, ok := m.ScopeFactor[s]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

func (m Model) frequencyFactor(f catalog.BackupFrequency) decimal.Decimal {
	if x, ok := m.FrequencyFactor[f]; ok {
		return x
	}
	return decimal.NewFromInt(1)
}
