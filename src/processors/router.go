package processors

import "github.com/username/edavkifolio/src/models"

// Router assigns each trade's lot-event pair to one of the five buckets.
// Routing is a pure function of the already-classified events; every error
// path belongs to the lot builder.
type Router struct {
	IncludeCrypto bool
	CryptoList    *models.CryptoList
}

// Route returns the bucket for a lot-event pair (both events of a trade
// always land in the same bucket).
//
// A trade is diverted to the skipped-crypto bucket only when crypto
// reporting is off, the instrument type is the spot crypto tag and the
// instrument is recognized as a cryptocurrency by the reference table.
// Leveraged crypto derivatives are never excluded.
func (r *Router) Route(ev models.LotEvent) models.Bucket {
	if !r.IncludeCrypto && ev.InstrumentType == CryptoSpotTag && r.isKnownCrypto(ev) {
		return models.BucketSkippedCrypto
	}
	if ev.AssetClass == models.AssetNormal {
		if ev.Direction == models.DirectionLong {
			return models.BucketLongNormal
		}
		return models.BucketShortNormal
	}
	if ev.Direction == models.DirectionLong {
		return models.BucketLongDerivative
	}
	return models.BucketShortDerivative
}

// Without a reference table the spot tag alone identifies a crypto position.
func (r *Router) isKnownCrypto(ev models.LotEvent) bool {
	if r.CryptoList == nil {
		return true
	}
	return r.CryptoList.Matches(ev.Symbol, ev.InstrumentName)
}
