package domain

// OperationReport tallies per-target outcomes of one account's operation.
// Leave counts guilds, unblock counts users; Skipped counts targets that
// needed no action (for example users that were not blocked).
type OperationReport struct {
	Succeeded int
	Skipped   int
	Failed    int
}

func (r OperationReport) Total() int {
	return r.Succeeded + r.Skipped + r.Failed
}

// AccountResult is one account's outcome within a batch. Good is only
// meaningful for verification. Err is set when the account's operation
// aborted with a fatal failure.
type AccountResult struct {
	Account Account
	Good    bool
	Report  OperationReport
	Err     error
}

// BatchReport aggregates per-account results in input order. It is the
// structured error report callers receive instead of a single propagated
// failure.
type BatchReport struct {
	Results []AccountResult
}

// Failed returns the results whose operation aborted, preserving input order.
func (b BatchReport) Failed() []AccountResult {
	var failed []AccountResult
	for _, result := range b.Results {
		if result.Err != nil {
			failed = append(failed, result)
		}
	}

	return failed
}

func (b BatchReport) Err() error {
	for _, result := range b.Results {
		if result.Err != nil {
			return result.Err
		}
	}

	return nil
}
