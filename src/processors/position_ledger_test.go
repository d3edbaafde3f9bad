package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/edavkifolio/src/models"
)

func lotEvent(positionID int64, name string, quantity float64, date string) models.LotEvent {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	return models.LotEvent{
		PositionID:     positionID,
		InstrumentName: name,
		Quantity:       quantity,
		Date:           d,
	}
}

func TestPositionLedger_RunningBalance(t *testing.T) {
	ledger := NewPositionLedger(NewWarningCollector())

	// Inserted out of date order on purpose.
	ledger.Add(models.BucketLongNormal, lotEvent(2, "Apple", 5, "2024-05-01"))
	ledger.Add(models.BucketLongNormal, lotEvent(2, "Apple", -5, "2024-06-01"))
	ledger.Add(models.BucketLongNormal, lotEvent(1, "Apple", 10, "2024-01-15"))
	ledger.Add(models.BucketLongNormal, lotEvent(1, "Apple", -10, "2024-03-20"))

	ledger.Finalize()

	groups := ledger.Groups(models.BucketLongNormal)
	require.Len(t, groups, 1)
	events := groups[0].Events
	require.Len(t, events, 4)

	assert.Equal(t, []float64{10, 0, 5, 0}, []float64{
		events[0].RunningBalance, events[1].RunningBalance,
		events[2].RunningBalance, events[3].RunningBalance,
	})
	assert.Equal(t, 0.0, events[len(events)-1].RunningBalance, "closed positions end at zero")
}

func TestPositionLedger_SameDayTieBreakByPositionID(t *testing.T) {
	ledger := NewPositionLedger(NewWarningCollector())

	ledger.Add(models.BucketLongDerivative, lotEvent(9, "Gold", 1, "2024-02-02"))
	ledger.Add(models.BucketLongDerivative, lotEvent(3, "Gold", 2, "2024-02-02"))
	ledger.Add(models.BucketLongDerivative, lotEvent(7, "Gold", 3, "2024-02-02"))

	ledger.Finalize()

	events := ledger.Groups(models.BucketLongDerivative)[0].Events
	require.Len(t, events, 3)
	assert.Equal(t, int64(3), events[0].PositionID)
	assert.Equal(t, int64(7), events[1].PositionID)
	assert.Equal(t, int64(9), events[2].PositionID)
}

func TestPositionLedger_GroupMetadataFromFirstEvent(t *testing.T) {
	ledger := NewPositionLedger(NewWarningCollector())

	first := lotEvent(1, "Vanguard S&P 500", 2, "2024-01-10")
	first.Symbol = "VOO"
	first.IsFund = true
	first.InstrumentType = "ETF"
	second := lotEvent(2, "Vanguard S&P 500", 3, "2024-01-05")
	second.Symbol = "IGNORED"

	ledger.Add(models.BucketLongNormal, first)
	ledger.Add(models.BucketLongNormal, second)
	ledger.Finalize()

	group := ledger.Groups(models.BucketLongNormal)[0]
	assert.Equal(t, "VOO", group.Symbol, "first-seen event donates group metadata")
	assert.True(t, group.IsFund)
	assert.Equal(t, "ETF", group.InstrumentType)
}

func TestPositionLedger_GroupsKeepInsertionOrder(t *testing.T) {
	ledger := NewPositionLedger(NewWarningCollector())

	for _, name := range []string{"Zebra", "Apple", "Mango", "Banana"} {
		ledger.Add(models.BucketShortNormal, lotEvent(1, name, 1, "2024-01-01"))
	}
	ledger.Finalize()

	groups := ledger.Groups(models.BucketShortNormal)
	require.Len(t, groups, 4)
	var names []string
	for _, g := range groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Zebra", "Apple", "Mango", "Banana"}, names)
}

func TestPositionLedger_ZeroQuantityWarns(t *testing.T) {
	warnings := NewWarningCollector()
	ledger := NewPositionLedger(warnings)

	ledger.Add(models.BucketLongNormal, lotEvent(1, "Apple", 0, "2024-01-01"))
	ledger.Finalize()

	assert.False(t, warnings.Empty())
	require.Len(t, ledger.Groups(models.BucketLongNormal), 1, "warned events are still emitted")
}
