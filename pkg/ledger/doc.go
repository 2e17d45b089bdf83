// Package ledger defines the accounts and transactions read from bank
// statements, plus a handful of selection helpers shared by the summary,
// the flow graph and the command-line report.
//
// # Accounts
//
// An [Account] is a party money moves between. Its identity for reporting is
// the pair (Name, AccountNumber); AccountNumber may be empty for parties the
// bank did not record an IBAN for (card terminals, for example). Accounts are
// compared structurally with [Account.Equal], never by pointer.
//
// # Transactions
//
// A [Transaction] is filed under the statement owner's account (Receiver) and
// names the counterparty (OtherParty). A negative Amount means money left the
// receiver, a positive Amount means money came in. Code identifies the row at
// the bank and is the deduplication key.
//
// Transactions hold their accounts by pointer, so marking an account as
// owned is visible through every transaction that references it.
package ledger
