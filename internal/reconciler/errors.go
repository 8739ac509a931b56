package reconciler

import "fmt"

// DataIntegrityError reports that a record which already passed validation
// failed the final eligibility re-check immediately before its mirror write.
// It always aborts the run: a mismatch here means the record set was mutated
// between phases, and continuing could persist ineligible rows.
type DataIntegrityError struct {
	ExternalID string
	Reason     string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("data integrity check failed for record %s: %s", e.ExternalID, e.Reason)
}

// RowWriteError wraps a single failed mirror upsert. Row write errors are
// tolerated up to a threshold and never stop the remaining writes on their own.
type RowWriteError struct {
	ExternalID string
	Err        error
}

func (e *RowWriteError) Error() string {
	return fmt.Sprintf("failed to write mirror row for record %s: %v", e.ExternalID, e.Err)
}

func (e *RowWriteError) Unwrap() error {
	return e.Err
}
