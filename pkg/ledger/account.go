package ledger

import "fmt"

// Account is a bank account taking part in transactions.
type Account struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	AccountNumber string `json:"account_number"`
	IsUserOwner   bool   `json:"is_user_owner"`
}

// Equal reports whether a and b describe the same account.
// Two nil accounts are equal; a nil and a non-nil account are not.
func (a *Account) Equal(b *Account) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Label returns the account name qualified with its account number,
// e.g. "Albert Heijn (NL11RABO0123)".
func (a *Account) Label() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.AccountNumber)
}

// String implements fmt.Stringer.
func (a *Account) String() string {
	if a.AccountNumber == "" {
		return a.Name
	}
	return a.Label()
}

// OwnedAccounts returns the accounts that belong to the statement owner,
// in input order.
func OwnedAccounts(accounts []*Account) []*Account {
	var owned []*Account
	for _, a := range accounts {
		if a.IsUserOwner {
			owned = append(owned, a)
		}
	}
	return owned
}

// DistinctAccounts returns accounts with structural duplicates removed,
// keeping the first occurrence of each.
func DistinctAccounts(accounts []*Account) []*Account {
	var out []*Account
	for _, a := range accounts {
		seen := false
		for _, b := range out {
			if a.Equal(b) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, a)
		}
	}
	return out
}
