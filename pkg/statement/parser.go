package statement

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
	"github.com/timohermans/rabo-overview/pkg/ledger"
	"github.com/timohermans/rabo-overview/pkg/store"
)

// Parser imports statement rows into a repository.
type Parser struct {
	repo   store.Repository
	logger *log.Logger
}

// NewParser creates a parser that stores through repo.
// If logger is nil, log.Default() is used.
func NewParser(repo store.Repository, logger *log.Logger) *Parser {
	if logger == nil {
		logger = log.Default()
	}
	return &Parser{repo: repo, logger: logger}
}

// row is a statement record with its fields parsed.
type row struct {
	line        int
	code        string
	iban        string
	date        time.Time
	amount      decimal.Decimal
	currency    string
	memo        string
	otherName   string
	otherNumber string
}

// Parse imports every row read from r.
//
// The returned report is never nil. On a repository error or context
// cancellation, Parse stops and returns the report so far together with
// the error.
func (p *Parser) Parse(ctx context.Context, r io.Reader) (*CreationReport, error) {
	report := &CreationReport{}

	for rec, err := range Records(r) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err != nil {
			var rowErr *RowError
			if !errors.As(err, &rowErr) {
				return report, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "read statement")
			}
			p.logger.Warn("skipped malformed row", "line", rowErr.Line, "err", rowErr.Err)
			report.fail(rowErr)
			continue
		}

		parsed, rowErr := parseRecord(rec)
		if rowErr != nil {
			p.logger.Warn("skipped invalid row", "line", rowErr.Line, "err", rowErr.Err)
			report.fail(rowErr)
			continue
		}

		result, err := p.save(ctx, parsed, report)
		if err != nil {
			return report, apperrors.Wrap(apperrors.ErrCodeStorage, err, "store row on line %d", parsed.line)
		}
		if result == ResultDuplicate {
			p.logger.Debug("skipped duplicate", "code", parsed.code)
		}
		report.record(result)
	}

	p.logger.Debug("parsed statement",
		"success", report.AmountSuccess,
		"duplicate", report.AmountDuplicate,
		"failed", report.AmountFailed)
	return report, nil
}

func parseRecord(rec Record) (*row, *RowError) {
	fail := func(err error) (*row, *RowError) {
		return nil, &RowError{Line: rec.Line, Err: err}
	}

	for _, f := range requiredFields {
		if _, ok := rec.Get(f); !ok {
			return fail(apperrors.New(apperrors.ErrCodeMissingField, "missing column %q", f))
		}
	}
	for _, f := range nonEmptyFields {
		if strings.TrimSpace(rec.Fields[f]) == "" {
			return fail(apperrors.New(apperrors.ErrCodeMissingField, "empty column %q", f))
		}
	}

	iban := strings.TrimSpace(rec.Fields[FieldIBAN])

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(rec.Fields[FieldDate]))
	if err != nil {
		return fail(apperrors.Wrap(apperrors.ErrCodeInvalidDate, err, "invalid date %q", rec.Fields[FieldDate]))
	}

	amount, err := ParseAmount(rec.Fields[FieldAmount])
	if err != nil {
		return fail(err)
	}

	return &row{
		line:        rec.Line,
		code:        iban + strings.TrimSpace(rec.Fields[FieldSequence]),
		iban:        iban,
		date:        date,
		amount:      amount,
		currency:    rec.Fields[FieldCurrency],
		memo:        rec.Fields[FieldDescription1] + rec.Fields[FieldDescription2] + rec.Fields[FieldDescription3],
		otherName:   rec.Fields[FieldOtherPartyName],
		otherNumber: strings.TrimSpace(rec.Fields[FieldOtherPartyNumber]),
	}, nil
}

// ParseAmount parses a statement amount such as "+2,50" or "-1041,20".
// The decimal separator is a comma.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "+")
	s = strings.Replace(s, ",", ".", 1)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, apperrors.Wrap(apperrors.ErrCodeInvalidAmount, err, "invalid amount %q", raw)
	}
	return d, nil
}

func (p *Parser) save(ctx context.Context, r *row, report *CreationReport) (ParseResult, error) {
	exists, err := p.repo.TransactionExists(ctx, r.code)
	if err != nil {
		return 0, err
	}
	if exists {
		return ResultDuplicate, nil
	}

	receiver, err := p.receiver(ctx, r, report)
	if err != nil {
		return 0, err
	}
	other, err := p.otherParty(ctx, r, report)
	if err != nil {
		return 0, err
	}

	tx := &ledger.Transaction{
		Date:       r.date,
		Amount:     r.amount,
		Code:       r.code,
		Currency:   r.currency,
		Memo:       r.memo,
		Receiver:   receiver,
		OtherParty: other,
	}
	if err := p.repo.CreateTransaction(ctx, tx); err != nil {
		if errors.Is(err, store.ErrDuplicateCode) {
			return ResultDuplicate, nil
		}
		return 0, err
	}
	report.Transactions = append(report.Transactions, tx)
	return ResultSuccess, nil
}

// receiver finds the statement account and marks it as owned, or creates it.
func (p *Parser) receiver(ctx context.Context, r *row, report *CreationReport) (*ledger.Account, error) {
	account, ok, err := p.repo.FindAccountByNumber(ctx, r.iban)
	if err != nil {
		return nil, err
	}
	if ok {
		if !account.IsUserOwner {
			p.logger.Debug("marking account as owned", "account", account)
		}
		if err := p.repo.MarkAsOwner(ctx, account); err != nil {
			return nil, err
		}
		return account, nil
	}

	account = &ledger.Account{Name: OwnAccountName, AccountNumber: r.iban, IsUserOwner: true}
	if err := p.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	report.Accounts = append(report.Accounts, account)
	return account, nil
}

// otherParty finds the counterparty by number, or by name when the row has
// no number, or creates it.
func (p *Parser) otherParty(ctx context.Context, r *row, report *CreationReport) (*ledger.Account, error) {
	account, ok, err := p.repo.FindAccountByNumberOrName(ctx, r.otherNumber, r.otherName)
	if err != nil {
		return nil, err
	}
	if ok {
		return account, nil
	}

	account = &ledger.Account{Name: r.otherName, AccountNumber: r.otherNumber}
	if err := p.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}
	report.Accounts = append(report.Accounts, account)
	return account, nil
}
