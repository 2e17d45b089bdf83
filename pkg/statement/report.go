package statement

import "github.com/timohermans/rabo-overview/pkg/ledger"

// ParseResult is the outcome of importing one row.
type ParseResult int

const (
	// ResultSuccess means the row was stored as a new transaction.
	ResultSuccess ParseResult = iota + 1
	// ResultDuplicate means a transaction with the row's code already existed.
	ResultDuplicate
	// ResultFailed means the row could not be parsed.
	ResultFailed
)

// String implements fmt.Stringer.
func (r ParseResult) String() string {
	switch r {
	case ResultSuccess:
		return "success"
	case ResultDuplicate:
		return "duplicate"
	case ResultFailed:
		return "failed"
	}
	return "unknown"
}

// CreationReport summarizes an import. Transactions and Accounts hold what
// this import created.
type CreationReport struct {
	AmountSuccess   int                   `json:"amount_success"`
	AmountDuplicate int                   `json:"amount_duplicate"`
	AmountFailed    int                   `json:"amount_failed"`
	Transactions    []*ledger.Transaction `json:"transactions"`
	Accounts        []*ledger.Account     `json:"accounts"`
	Failures        []*RowError           `json:"-"`
}

// Total returns the number of rows seen.
func (r *CreationReport) Total() int {
	return r.AmountSuccess + r.AmountDuplicate + r.AmountFailed
}

// Merge adds the counts and created items of other to r.
func (r *CreationReport) Merge(other *CreationReport) {
	if other == nil {
		return
	}
	r.AmountSuccess += other.AmountSuccess
	r.AmountDuplicate += other.AmountDuplicate
	r.AmountFailed += other.AmountFailed
	r.Transactions = append(r.Transactions, other.Transactions...)
	r.Accounts = append(r.Accounts, other.Accounts...)
	r.Failures = append(r.Failures, other.Failures...)
}

func (r *CreationReport) record(result ParseResult) {
	switch result {
	case ResultSuccess:
		r.AmountSuccess++
	case ResultDuplicate:
		r.AmountDuplicate++
	case ResultFailed:
		r.AmountFailed++
	}
}

func (r *CreationReport) fail(err *RowError) {
	r.record(ResultFailed)
	r.Failures = append(r.Failures, err)
}
