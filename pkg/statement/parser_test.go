package statement

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/ledger"
	"github.com/timohermans/rabo-overview/pkg/store"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func newTestParser(repo store.Repository) *Parser {
	return NewParser(repo, log.New(io.Discard))
}

func TestParse_SingleRow(t *testing.T) {
	report, err := newTestParser(store.NewMemoryStore()).Parse(context.Background(), openFixture(t, "single_dummy.csv"))
	require.NoError(t, err)

	assert.Equal(t, 1, report.AmountSuccess)
	assert.Equal(t, 0, report.AmountDuplicate)
	assert.Equal(t, 0, report.AmountFailed)
	require.Len(t, report.Transactions, 1)

	tx := report.Transactions[0]
	assert.Equal(t, time.Date(2019, 9, 1, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("2.5")), "amount = %s", tx.Amount)
	assert.Equal(t, "NL11RABO0104955555000000000000007213", tx.Code)
	assert.Equal(t, "EUR", tx.Currency)
	assert.Equal(t, "Spotify12", tx.Memo)

	assert.Equal(t, "Own account", tx.Receiver.Name)
	assert.Equal(t, "NL11RABO0104955555", tx.Receiver.AccountNumber)
	assert.True(t, tx.Receiver.IsUserOwner)
	assert.Equal(t, "J.M.G. Kerkhoffs eo", tx.OtherParty.Name)
	assert.Equal(t, "NL42RABO0114164838", tx.OtherParty.AccountNumber)
	assert.False(t, tx.OtherParty.IsUserOwner)
}

func TestParse_DuplicateTransaction(t *testing.T) {
	report, err := newTestParser(store.NewMemoryStore()).Parse(context.Background(), openFixture(t, "duplicate_transaction.csv"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.AmountSuccess)
	assert.Equal(t, 1, report.AmountDuplicate)
	assert.Len(t, report.Transactions, 2)
	assert.Len(t, report.Accounts, 3)
}

func TestParse_ReimportIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStore()
	p := newTestParser(repo)

	_, err := p.Parse(ctx, openFixture(t, "duplicate_transaction.csv"))
	require.NoError(t, err)

	report, err := p.Parse(ctx, openFixture(t, "duplicate_transaction.csv"))
	require.NoError(t, err)

	assert.Equal(t, 0, report.AmountSuccess)
	assert.Equal(t, 3, report.AmountDuplicate)
	assert.Empty(t, report.Transactions)
	assert.Empty(t, report.Accounts)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 3)
}

func TestParse_MarksSecondStatementAccountAsOwner(t *testing.T) {
	report, err := newTestParser(store.NewMemoryStore()).Parse(context.Background(), openFixture(t, "is_user_owner_switch.csv"))
	require.NoError(t, err)

	require.Len(t, report.Accounts, 3)
	var savings []*ledger.Account
	for _, a := range report.Accounts {
		if a.Name == "Savings" {
			savings = append(savings, a)
		}
	}
	require.Len(t, savings, 1)
	assert.True(t, savings[0].IsUserOwner)

	// The first transaction was stored while Savings was still external.
	assert.True(t, report.Transactions[0].OtherParty.IsUserOwner)
}

func TestParse_FindsOtherPartyByNameWithoutAccountNumber(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStore()

	report, err := newTestParser(repo).Parse(ctx, openFixture(t, "other_parties_no_account_number.csv"))
	require.NoError(t, err)
	assert.Equal(t, 4, report.AmountSuccess)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	others := make(map[string]int)
	for _, a := range accounts {
		if !a.IsUserOwner {
			others[a.Name]++
		}
	}
	assert.Equal(t, map[string]int{"Beter Bed HEERLEN": 1, "Lukoil TANKAUTOMAAT": 1}, others)
}

func TestParse_FailedRowsAreCounted(t *testing.T) {
	header := `"IBAN/BBAN","Munt","Volgnr","Datum","Bedrag","Tegenrekening IBAN/BBAN","Naam tegenpartij","Omschrijving-1","Omschrijving-2","Omschrijving-3"`
	input := strings.Join([]string{
		header,
		`"NL11RABO0104955555","EUR","1","2019-09-01","+2,50","","Hema","a","b","c"`,
		`"NL11RABO0104955555","EUR","2","2019-09-01","twee","","Hema","a","b","c"`,
		`"NL11RABO0104955555","EUR","3","01-09-2019","+2,50","","Hema","a","b","c"`,
		`"NL11RABO0104955555","EUR","4","2019-09-01"`,
		`"NL11RABO0104955555","EUR","","2019-09-01","+2,50","","Hema","a","b","c"`,
	}, "\n")

	report, err := newTestParser(store.NewMemoryStore()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, report.AmountSuccess)
	assert.Equal(t, 0, report.AmountDuplicate)
	assert.Equal(t, 4, report.AmountFailed)
	assert.Equal(t, 5, report.Total())
	require.Len(t, report.Failures, 4)

	codes := []apperrors.Code{
		apperrors.ErrCodeInvalidAmount,
		apperrors.ErrCodeInvalidDate,
		apperrors.ErrCodeMissingField,
		apperrors.ErrCodeMissingField,
	}
	for i, code := range codes {
		assert.True(t, apperrors.Is(report.Failures[i], code), "failure %d: %v", i, report.Failures[i])
	}
	assert.Equal(t, 3, report.Failures[0].Line)
}

func TestParse_AcceptsAnyOwnAccountNumber(t *testing.T) {
	header := `"IBAN/BBAN","Munt","Volgnr","Datum","Bedrag","Tegenrekening IBAN/BBAN","Naam tegenpartij","Omschrijving-1","Omschrijving-2","Omschrijving-3"`
	input := strings.Join([]string{
		header,
		`"0104955555","EUR","1","2019-09-01","-12,50","","Hema","a","b","c"`,
		`"nl11rabo0104955555","EUR","2","2019-09-02","+40,00","","Werkgever","a","b","c"`,
	}, "\n")

	report, err := newTestParser(store.NewMemoryStore()).Parse(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 2, report.AmountSuccess)
	assert.Equal(t, 0, report.AmountFailed)
	assert.Empty(t, report.Failures)
	require.Len(t, report.Transactions, 2)

	bban, iban := report.Transactions[0], report.Transactions[1]
	assert.Equal(t, "01049555551", bban.Code)
	assert.Equal(t, "0104955555", bban.Receiver.AccountNumber)
	assert.True(t, bban.Receiver.IsUserOwner)
	assert.Equal(t, "nl11rabo01049555552", iban.Code)
	assert.Equal(t, "nl11rabo0104955555", iban.Receiver.AccountNumber)
	assert.True(t, iban.Receiver.IsUserOwner)
}

func TestParse_RepositoryErrorAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := store.NewMockRepository(ctrl)
	boom := errors.New("connection reset")

	repo.EXPECT().TransactionExists(gomock.Any(), "NL11RABO0104955555000000000000007213").Return(false, nil)
	repo.EXPECT().FindAccountByNumber(gomock.Any(), "NL11RABO0104955555").Return(nil, false, boom)

	report, err := newTestParser(repo).Parse(context.Background(), openFixture(t, "single_dummy.csv"))

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeStorage))
	require.NotNil(t, report)
	assert.Equal(t, 0, report.AmountSuccess)
}

func TestParse_ExistingReceiverIsMarkedAsOwner(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := store.NewMockRepository(ctrl)
	savings := &ledger.Account{ID: "1", Name: "Savings", AccountNumber: "NL11RABO0104955555"}
	other := &ledger.Account{ID: "2", Name: "J.M.G. Kerkhoffs eo", AccountNumber: "NL42RABO0114164838"}

	gomock.InOrder(
		repo.EXPECT().TransactionExists(gomock.Any(), gomock.Any()).Return(false, nil),
		repo.EXPECT().FindAccountByNumber(gomock.Any(), "NL11RABO0104955555").Return(savings, true, nil),
		repo.EXPECT().MarkAsOwner(gomock.Any(), savings).DoAndReturn(func(_ context.Context, a *ledger.Account) error {
			a.IsUserOwner = true
			return nil
		}),
		repo.EXPECT().FindAccountByNumberOrName(gomock.Any(), "NL42RABO0114164838", "J.M.G. Kerkhoffs eo").Return(other, true, nil),
		repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(nil),
	)

	report, err := newTestParser(repo).Parse(context.Background(), openFixture(t, "single_dummy.csv"))
	require.NoError(t, err)

	assert.Equal(t, 1, report.AmountSuccess)
	assert.Empty(t, report.Accounts, "no accounts were created")
	assert.True(t, savings.IsUserOwner)
	assert.Same(t, savings, report.Transactions[0].Receiver)
}

func TestParse_DuplicateOnInsertRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := store.NewMockRepository(ctrl)
	own := &ledger.Account{ID: "1", Name: "Own account", AccountNumber: "NL11RABO0104955555", IsUserOwner: true}
	other := &ledger.Account{ID: "2", Name: "J.M.G. Kerkhoffs eo", AccountNumber: "NL42RABO0114164838"}

	repo.EXPECT().TransactionExists(gomock.Any(), gomock.Any()).Return(false, nil)
	repo.EXPECT().FindAccountByNumber(gomock.Any(), gomock.Any()).Return(own, true, nil)
	repo.EXPECT().MarkAsOwner(gomock.Any(), own).Return(nil)
	repo.EXPECT().FindAccountByNumberOrName(gomock.Any(), gomock.Any(), gomock.Any()).Return(other, true, nil)
	repo.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(store.ErrDuplicateCode)

	report, err := newTestParser(repo).Parse(context.Background(), openFixture(t, "single_dummy.csv"))
	require.NoError(t, err)

	assert.Equal(t, 0, report.AmountSuccess)
	assert.Equal(t, 1, report.AmountDuplicate)
}

func TestParse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newTestParser(store.NewMemoryStore()).Parse(ctx, openFixture(t, "single_dummy.csv"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, report.Total())
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"+2,50", "2.5", false},
		{"-1041,20", "-1041.2", false},
		{"0,00", "0", false},
		{"12", "12", false},
		{"", "", true},
		{"twee", "", true},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, "ParseAmount(%q)", tt.raw)
			assert.True(t, apperrors.Is(err, apperrors.ErrCodeInvalidAmount))
			continue
		}
		require.NoError(t, err, "ParseAmount(%q)", tt.raw)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "ParseAmount(%q) = %s, want %s", tt.raw, got, tt.want)
	}
}
