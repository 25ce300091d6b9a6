package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"it-configurator/internal/common/metrics"
	"it-configurator/internal/configurator/catalog"
)

// Quote is the result of one price computation. Total carries full decimal
// precision; Display is what the customer sees, rounded to whole currency.
type Quote struct {
	PerService map[catalog.ServiceKey]decimal.Decimal
	Total      decimal.Decimal
	Display    int64
}

// Engine prices a set of selected services against a fixed Model. Compute is
// pure: same selections and profile always yield the same quote.
type Engine struct {
	model Model
}

func NewEngine(model Model) *Engine {
	return &Engine{model: model}
}

// Compute prices every selected service and sums the parts. Option structs
// for services absent from selections contribute nothing. A nil profile is
// treated as an unknown company.
func (e *Engine) Compute(selections map[catalog.ServiceKey]catalog.OptionSet, profile *catalog.Profile) Quote {
	start := time.Now()
	defer func() {
		metrics.PriceComputations.Observe(time.Since(start).Seconds())
	}()

	q := Quote{PerService: make(map[catalog.ServiceKey]decimal.Decimal, len(selections))}

	for _, key := range catalog.Keys() {
		opts, ok := selections[key]
		if !ok || opts == nil {
			continue
		}
		part := e.priceService(opts)
		if key == catalog.ServiceCloud && profile != nil && profile.CompanySize == catalog.SizeSmall {
			part = part.Mul(e.model.SmallCompanyDiscount)
		}
		q.PerService[key] = part
		q.Total = q.Total.Add(part)
	}

	q.Display = q.Total.Round(0).IntPart()
	return q
}

func (e *Engine) priceService(opts catalog.OptionSet) decimal.Decimal {
	m := e.model
	switch o := opts.(type) {
	case *catalog.CloudOptions:
		price := m.CloudBase.Add(m.CloudPerUser.Mul(decimal.NewFromInt(int64(o.Users))))
		if o.HighAvailability {
			price = price.Add(m.HighAvailability)
		}
		return price

	case *catalog.VDIOptions:
		users := decimal.NewFromInt(int64(o.Workplaces))
		price := m.VDIBase.Add(m.VDIPerUser.Mul(users).Mul(m.tierFactor(o.Performance)))
		if o.OfficeSuite {
			price = price.Add(m.OfficePerUser.Mul(users))
		}
		return price

	case *catalog.MonitoringOptions:
		devices := decimal.NewFromInt(int64(o.Devices))
		price := m.MonitoringBase.Add(m.MonitoringPerDevice.Mul(devices).Mul(m.scopeFactor(o.Scope)))
		if o.AroundTheClock {
			price = price.Add(m.AroundTheClock)
		}
		return price

	case *catalog.BackupOptions:
		volume := decimal.NewFromInt(int64(o.VolumeGB))
		price := m.BackupBase.Add(m.BackupPerGB.Mul(volume).Mul(m.frequencyFactor(o.Frequency)))
		if o.Offsite {
			price = price.Add(m.OffsiteReplica)
		}
		return price
	}
	return decimal.Zero
}
