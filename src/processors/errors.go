package processors

import "errors"

// Fatal error categories. Every error raised by the core wraps one of these
// sentinels together with the offending ids, dates or values, so callers can
// both classify the failure and show the operator what to fix. All of them
// abort the run before any filing is written: a tax filing must never be
// submitted half-computed.
var (
	// ErrRateUnavailable: no exchange rate for the requested currency on the
	// requested date nor on any earlier date inside the fallback window.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	// ErrUnrecognizedDateFormat: the statement's date sample matched none of
	// the known formats. A configuration/data error, not retryable.
	ErrUnrecognizedDateFormat = errors.New("unrecognized statement date format")

	// ErrUnresolvedPosition: a position id could not be mapped to a symbol
	// via transactions or company metadata.
	ErrUnresolvedPosition = errors.New("unresolved position")

	// ErrUnknownDirection: the trade action token is neither Buy nor Sell.
	ErrUnknownDirection = errors.New("unknown trade direction")

	// ErrUnknownAssetType: the statement instrument-type tag is in neither
	// the derivative nor the normal set.
	ErrUnknownAssetType = errors.New("unknown asset type")

	// ErrInconsistentLeverage: a normal (non-derivative) trade reported
	// leverage greater than one; leverage implies a derivative.
	ErrInconsistentLeverage = errors.New("leverage inconsistent with asset type")

	// ErrISINMismatch: a dividend's reported ISIN disagrees with the company
	// metadata for the same symbol. Filing under the wrong legal entity must
	// never happen silently.
	ErrISINMismatch = errors.New("dividend ISIN does not match company metadata")

	// ErrBadNumber: a numeric statement field did not parse under the pinned
	// number convention.
	ErrBadNumber = errors.New("unparseable numeric field")
)
