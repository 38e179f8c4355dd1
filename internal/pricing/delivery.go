package pricing

import (
	"math"
	"time"
)

const (
	DefaultWorkHoursPerDay = 8
	DefaultShippingDays    = 3
)

// DeliveryPolicy converts production hours into a promised date.
type DeliveryPolicy struct {
	HoursPerDay  float64
	ShippingDays int
}

// DefaultDeliveryPolicy is an eight hour production day plus three business
// days of shipping.
func DefaultDeliveryPolicy() DeliveryPolicy {
	return DeliveryPolicy{HoursPerDay: DefaultWorkHoursPerDay, ShippingDays: DefaultShippingDays}
}

// ProductionDays rounds production hours up to whole working days.
func (p DeliveryPolicy) ProductionDays(hours float64) int {
	perDay := p.HoursPerDay
	if perDay <= 0 {
		perDay = DefaultWorkHoursPerDay
	}
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / perDay))
}

// Estimate returns the delivery date for a job needing the given production
// hours, counting business days forward from now.
func (p DeliveryPolicy) Estimate(now time.Time, hours float64) time.Time {
	return AddBusinessDays(now, p.ProductionDays(hours)+p.ShippingDays)
}

// AddBusinessDays walks forward one calendar day at a time and counts only
// Monday through Friday. Holidays are not observed.
func AddBusinessDays(start time.Time, days int) time.Time {
	d := start
	for counted := 0; counted < days; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			counted++
		}
	}
	return d
}
