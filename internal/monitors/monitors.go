package monitors

import (
	"math"
	"sort"

	"github.com/kimgoetzke/randolf/internal/identity"
)

// Monitors is the set of currently detected displays, sorted by handle.
type Monitors struct {
	all []Monitor
}

// NewMonitors returns a Monitors collection sorted by handle.
func NewMonitors(all []Monitor) *Monitors {
	sorted := make([]Monitor, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Handle < sorted[j].Handle })
	return &Monitors{all: sorted}
}

// All returns every detected monitor, in handle order.
func (m *Monitors) All() []Monitor {
	return m.all
}

// GetByID returns the monitor with the given stable output name.
func (m *Monitors) GetByID(id string) (Monitor, bool) {
	for _, mon := range m.all {
		if mon.ID == id {
			return mon, true
		}
	}
	return Monitor{}, false
}

// GetByHandle returns the monitor with the given volatile handle.
func (m *Monitors) GetByHandle(h identity.MonitorHandle) (Monitor, bool) {
	for _, mon := range m.all {
		if mon.Handle == h {
			return mon, true
		}
	}
	return Monitor{}, false
}

// GetInDirection returns the monitor in direction d of the monitor identified
// by referenceHandle whose center is closest to the reference's center. Ties
// are broken by lowest handle, which falls out naturally from the ascending
// handle order of m.all combined with a strict less-than comparison.
func (m *Monitors) GetInDirection(d Direction, referenceHandle identity.MonitorHandle) (Monitor, bool) {
	reference, ok := m.GetByHandle(referenceHandle)
	if !ok {
		return Monitor{}, false
	}

	var closest Monitor
	found := false
	closestDistance := math.MaxFloat64
	for _, mon := range m.all {
		if !mon.IsInDirectionOf(reference, d) {
			continue
		}
		distance := reference.Center.DistanceTo(mon.Center)
		if distance < closestDistance {
			closestDistance = distance
			closest = mon
			found = true
		}
	}

	return closest, found
}
