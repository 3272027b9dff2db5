package monitor

// Outcome describes how monitoring cycle ended.
type Outcome string

const (
	// OutcomeSkipped means cycle didn't start because previous one was still running.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFetchFailed means catalog couldn't be fetched and snapshot was left untouched.
	OutcomeFetchFailed Outcome = "fetch_failed"
	// OutcomeLoadFailed means previous snapshot couldn't be read and snapshot was left untouched.
	OutcomeLoadFailed Outcome = "load_failed"
	// OutcomeInterrupted means cycle was cancelled before all added products were checked and snapshot was left untouched.
	OutcomeInterrupted Outcome = "interrupted"
	// OutcomeBootstrap means baseline snapshot was established.
	OutcomeBootstrap Outcome = "bootstrap"
	// OutcomeNoChange means catalog size didn't change.
	OutcomeNoChange Outcome = "no_change"
	// OutcomeNoneAdded means catalog size changed, but no product was added.
	OutcomeNoneAdded Outcome = "none_added"
	// OutcomeNoneInStock means products were added, but none of them is in stock.
	OutcomeNoneInStock Outcome = "none_in_stock"
	// OutcomeReported means added in stock products were reported.
	OutcomeReported Outcome = "reported"
)
