package publish

import "context"

// FeePayer forwards a flat fee to a record's original creator before a remix
// is published. Implementations are external collaborators (a wallet, a
// payment rail); vitrine ships none by default.
type FeePayer interface {
	Pay(ctx context.Context, recipient string, amount int64) error
}

// FeeStatus classifies the outcome of the best-effort remix fee step.
type FeeStatus string

const (
	FeePaid    FeeStatus = "paid"
	FeeSkipped FeeStatus = "skipped"
)

// FeeOutcome reports what happened to the remix fee. A skipped fee never
// aborts the remix; the outcome rides along on the terminal result so callers
// and tests can assert on it independently.
type FeeOutcome struct {
	Status    FeeStatus
	Reason    string
	Recipient string
	Amount    int64
}

func feePaid(recipient string, amount int64) FeeOutcome {
	return FeeOutcome{Status: FeePaid, Recipient: recipient, Amount: amount}
}

func feeSkipped(reason string, recipient string, amount int64) FeeOutcome {
	return FeeOutcome{Status: FeeSkipped, Reason: reason, Recipient: recipient, Amount: amount}
}
