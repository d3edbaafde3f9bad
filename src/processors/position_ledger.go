package processors

import (
	"sort"

	"github.com/username/edavkifolio/src/models"
)

// PositionLedger groups routed lot events by instrument display name within
// each bucket and computes the running inventory balance per group. Group
// order follows first insertion; event order within a group is the canonical
// (event date, position id) ascending — a reproducible ordering, not the true
// execution order.
type PositionLedger struct {
	buckets  map[models.Bucket][]*models.PositionGroup
	index    map[models.Bucket]map[string]*models.PositionGroup
	warnings *WarningCollector
}

func NewPositionLedger(warnings *WarningCollector) *PositionLedger {
	return &PositionLedger{
		buckets:  make(map[models.Bucket][]*models.PositionGroup),
		index:    make(map[models.Bucket]map[string]*models.PositionGroup),
		warnings: warnings,
	}
}

// Add appends a lot event to its instrument's group in the given bucket,
// creating the group on first sight. The first event donates the group's
// symbol, fund flag and instrument subtype.
func (l *PositionLedger) Add(bucket models.Bucket, ev models.LotEvent) {
	byName, ok := l.index[bucket]
	if !ok {
		byName = make(map[string]*models.PositionGroup)
		l.index[bucket] = byName
	}
	group, ok := byName[ev.InstrumentName]
	if !ok {
		group = &models.PositionGroup{
			Name:           ev.InstrumentName,
			Symbol:         ev.Symbol,
			ISIN:           ev.ISIN,
			IsFund:         ev.IsFund,
			InstrumentType: ev.InstrumentType,
		}
		byName[ev.InstrumentName] = group
		l.buckets[bucket] = append(l.buckets[bucket], group)
	}
	group.Events = append(group.Events, ev)
}

// Finalize sorts every group by (event date, position id) and assigns each
// event's running balance. The balance after a group's final event equals
// the net open quantity for the instrument — zero when fully closed.
func (l *PositionLedger) Finalize() {
	for bucket, groups := range l.buckets {
		for _, group := range groups {
			sort.SliceStable(group.Events, func(i, j int) bool {
				a, b := group.Events[i], group.Events[j]
				if !a.Date.Equal(b.Date) {
					return a.Date.Before(b.Date)
				}
				return a.PositionID < b.PositionID
			})
			balance := 0.0
			for i := range group.Events {
				ev := &group.Events[i]
				if ev.Quantity == 0 {
					// Economically meaningless, but not worth aborting over.
					l.warnings.Addf("zero-unit lot event: bucket %s, instrument %q, position %d", bucket, group.Name, ev.PositionID)
				}
				balance += ev.Quantity
				ev.RunningBalance = balance
			}
		}
	}
}

// Groups returns the bucket's groups in first-insertion order.
func (l *PositionLedger) Groups(bucket models.Bucket) []*models.PositionGroup {
	return l.buckets[bucket]
}
