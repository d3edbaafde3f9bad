package services

import "errors"

var (
	ErrParsingFailed   = errors.New("statement parsing failed")
	ErrNoStatementData = errors.New("no statement rows found in the input files")
	ErrRateFeedFailed  = errors.New("exchange-rate feed unavailable")
	ErrNoTaxpayer      = errors.New("no taxpayer configured")
	ErrInvalidTaxpayer = errors.New("invalid taxpayer data")
)
