package processors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/username/edavkifolio/src/models"
)

// Asset-class tag sets. A tag in neither set is fatal; it means an
// unsupported statement variant.
var (
	derivativeAssetTags = map[string]bool{"CFD": true, "OPT": true, "FUT": true, "FOP": true}
	normalAssetTags     = map[string]bool{"Stocks": true, "Crypto": true, "ETF": true}
)

// CryptoSpotTag marks the non-leveraged crypto instrument type; only trades
// with this tag are candidates for the crypto exclusion.
const CryptoSpotTag = "Crypto"

const fundAssetTag = "ETF"

// LotBuilder turns one closed-trade record into its acquisition/disposal
// lot-event pair, in reporting currency. It is a pure function of the trade,
// the pinned statement format and the rate table, so trades may be processed
// in any order.
type LotBuilder struct {
	ReportYear        int
	Format            StatementFormat
	Rates             *RateTable
	StatementCurrency string
	Resolver          *SymbolResolver

	// Sentinels for the leverage column. The observed statement variants
	// disagree on these; they are configuration, not constants.
	LeverageWhenMissing     int
	LeverageWhenUnparseable int
}

// Build derives the lot-event pair for one trade. A nil pair with a nil
// error means the trade closed outside the report year and is skipped;
// trades are attributed to their closing year only.
func (b *LotBuilder) Build(trade models.RawTrade) (*models.LotEvent, *models.LotEvent, error) {
	closeDate, err := b.Format.ParseDate(trade.CloseDate)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %s: %w", trade.PositionID, err)
	}
	if closeDate.Year() != b.ReportYear {
		return nil, nil, nil
	}
	openDate, err := b.Format.ParseDate(trade.OpenDate)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %s: %w", trade.PositionID, err)
	}

	positionID, err := strconv.ParseInt(trade.PositionID, 10, 64)
	if err != nil {
		return nil, nil, fmt.Errorf("trade: bad position id %q: %w", trade.PositionID, err)
	}

	actionToken, name, _ := strings.Cut(trade.Action, " ")
	var direction models.Direction
	switch actionToken {
	case "Buy":
		direction = models.DirectionLong
	case "Sell":
		direction = models.DirectionShort
	default:
		return nil, nil, fmt.Errorf("%w: position %d action %q", ErrUnknownDirection, positionID, trade.Action)
	}

	symbol, _ := b.Resolver.Resolve(positionID)
	symbol = RepairForexSymbol(symbol, name)

	leverage := b.parseLeverage(trade.Leverage)

	amount, err := b.Format.ParseFloat(trade.Amount)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %d amount: %w", positionID, err)
	}
	if leverage > 1 {
		amount *= float64(leverage)
	}
	units, err := b.Format.ParseFloat(trade.Units)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %d units: %w", positionID, err)
	}
	profit, err := b.Format.ParseFloat(trade.Profit)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %d profit: %w", positionID, err)
	}

	assetClass, err := classifyAssetTag(trade.AssetType, leverage, positionID)
	if err != nil {
		return nil, nil, err
	}

	// The statement's own open/close rate columns are unreliable; the unit
	// price is always back-computed from amount, units and profit.
	openPrice := amount / units
	closePrice := (amount + profit) / units

	openRate, err := b.Rates.Rate(openDate, b.StatementCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %d open: %w", positionID, err)
	}
	closeRate, err := b.Rates.Rate(closeDate, b.StatementCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("trade %d close: %w", positionID, err)
	}

	common := models.LotEvent{
		PositionID:     positionID,
		Symbol:         symbol,
		InstrumentName: name,
		ISIN:           trade.ISIN,
		Direction:      direction,
		AssetClass:     assetClass,
		InstrumentType: trade.AssetType,
		IsFund:         trade.AssetType == fundAssetTag,
		Leverage:       leverage,
	}

	open := common
	open.Quantity = units
	open.Date = openDate
	open.UnitPrice = openPrice / openRate

	closeEv := common
	closeEv.Quantity = -units
	closeEv.Date = closeDate
	closeEv.UnitPrice = closePrice / closeRate

	return &open, &closeEv, nil
}

func (b *LotBuilder) parseLeverage(s string) int {
	if s == "" {
		return b.LeverageWhenMissing
	}
	leverage, err := strconv.Atoi(s)
	if err != nil {
		return b.LeverageWhenUnparseable
	}
	return leverage
}

func classifyAssetTag(tag string, leverage int, positionID int64) (models.AssetClass, error) {
	switch {
	case derivativeAssetTags[tag]:
		return models.AssetDerivative, nil
	case normalAssetTags[tag]:
		if leverage > 1 {
			return "", fmt.Errorf("%w: position %d type %q with leverage %d", ErrInconsistentLeverage, positionID, tag, leverage)
		}
		return models.AssetNormal, nil
	default:
		return "", fmt.Errorf("%w: position %d type %q", ErrUnknownAssetType, positionID, tag)
	}
}
