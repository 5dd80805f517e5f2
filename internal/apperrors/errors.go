package apperrors

import "errors"

// Input errors represent requests the API cannot serve as given.
var (
	// ErrMissingSymbols indicates that the symbols query parameter was absent.
	ErrMissingSymbols = errors.New("symbols parameter is required")

	// ErrEmptySymbols indicates that the symbols parameter held only separators or whitespace.
	ErrEmptySymbols = errors.New("at least one symbol is required")

	// ErrTooManySymbols indicates that a request asked for more symbols than one batch allows.
	ErrTooManySymbols = errors.New("too many symbols requested")
)

// Holdings errors represent problems with the static portfolio file.
var (
	// ErrHoldingsNotLoaded indicates that the holdings file could not be read or validated at startup.
	ErrHoldingsNotLoaded = errors.New("holdings not loaded")

	// ErrUnsupportedHoldingsFormat indicates that the holdings file extension is not recognised.
	ErrUnsupportedHoldingsFormat = errors.New("unsupported holdings file format")

	// ErrInvalidHolding indicates that a holding failed validation.
	ErrInvalidHolding = errors.New("invalid holding")
)

// Upstream errors describe why a single symbol could not be enriched.
// They are reported per symbol and never fail a whole batch.
var (
	// ErrUpstreamStatus indicates a non-2xx response from the market-data API.
	ErrUpstreamStatus = errors.New("yahoo finance api error")

	// ErrNoPriceData indicates that the response did not contain a usable price.
	ErrNoPriceData = errors.New("no valid price data found")

	// ErrPriceOutOfRange indicates that the reported price failed the sanity bounds.
	ErrPriceOutOfRange = errors.New("invalid price data")

	// ErrInvalidMetrics indicates that the reported fundamentals were not usable numbers.
	ErrInvalidMetrics = errors.New("invalid metrics data")

	// ErrNoResult indicates that the market-data API returned an empty result set.
	ErrNoResult = errors.New("no results returned")
)

// Operation failure errors are returned to clients as 500 responses.
var (
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToFetchQuotes      = errors.New("failed to fetch quotes")
	ErrFailedToFetchMetrics     = errors.New("failed to fetch metrics")
	ErrFailedToGetPortfolio     = errors.New("failed to get portfolio")
	ErrFailedToGetSectors       = errors.New("failed to get sector summary")
	ErrFailedToGetSummary       = errors.New("failed to get portfolio summary")
	ErrFailedToExportPortfolio  = errors.New("failed to export portfolio")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)
