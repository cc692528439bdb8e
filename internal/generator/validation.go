// internal/generator/validation.go
package generator

import (
	"fmt"

	xmlerrors "xmlgen-service/internal/common/errors"
)

// Limits caps a job's size. Zero values disable the corresponding cap.
type Limits struct {
	MaxCopies       int
	MaxTransactions int
}

// Validate rejects a malformed job before any work starts. Batches may not
// outnumber transactions: empty batches would violate downstream consumers'
// count invariants, so the job is rejected rather than zero-filled.
func (j Job) Validate(limits Limits) error {
	if len(j.Template) == 0 {
		return xmlerrors.NewInvalidParameterError("template", "template must not be empty")
	}
	if j.NumTransactions < 1 {
		return xmlerrors.NewInvalidParameterError("numTransactions",
			fmt.Sprintf("must be positive, got %d", j.NumTransactions))
	}
	if j.NumBatches < 1 {
		return xmlerrors.NewInvalidParameterError("numBatches",
			fmt.Sprintf("must be positive, got %d", j.NumBatches))
	}
	if j.NumCopies < 1 {
		return xmlerrors.NewInvalidParameterError("numCopies",
			fmt.Sprintf("must be positive, got %d", j.NumCopies))
	}
	if j.NumBatches > j.NumTransactions {
		return xmlerrors.NewInvalidParameterError("numBatches",
			fmt.Sprintf("numBatches (%d) exceeds numTransactions (%d)", j.NumBatches, j.NumTransactions))
	}
	if limits.MaxTransactions > 0 && j.NumTransactions > limits.MaxTransactions {
		return xmlerrors.NewInvalidParameterError("numTransactions",
			fmt.Sprintf("exceeds limit of %d", limits.MaxTransactions))
	}
	if limits.MaxCopies > 0 && j.NumCopies > limits.MaxCopies {
		return xmlerrors.NewInvalidParameterError("numCopies",
			fmt.Sprintf("exceeds limit of %d", limits.MaxCopies))
	}
	return nil
}
