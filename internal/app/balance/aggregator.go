package balance

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/ohmynofan/token-balance-checker/internal/domain/model"
	"github.com/ohmynofan/token-balance-checker/pkg/utils"
)

var (
	// ErrInvalidAddress is returned before any query is issued.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrQueryFailed matches every *QueryError via errors.Is.
	ErrQueryFailed = errors.New("balance query failed")
	// ErrInvalidToken marks a descriptor whose contract address is malformed.
	ErrInvalidToken = errors.New("invalid token descriptor")
)

// LedgerQuery is the read-only view of the chain the aggregator needs.
type LedgerQuery interface {
	BalanceOf(ctx context.Context, contract, account common.Address) (*big.Int, error)
	Decimals(ctx context.Context, contract common.Address) (uint8, error)
	Symbol(ctx context.Context, contract common.Address) (string, error)
}

// QueryError reports the first ledger read that failed during an aggregation.
type QueryError struct {
	Token     model.TokenDescriptor
	Operation string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s(%s): %v", ErrQueryFailed, e.Operation, e.Token.Symbol, e.Err)
}

func (e *QueryError) Unwrap() []error { return []error{ErrQueryFailed, e.Err} }

type Aggregator struct {
	tokens      []model.TokenDescriptor
	query       LedgerQuery
	concurrency int
	tokenErr    error
}

type Option func(*Aggregator)

// WithConcurrency caps how many tokens are queried at once. n <= 0 means
// one goroutine per token.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) { a.concurrency = n }
}

func New(tokens []model.TokenDescriptor, query LedgerQuery, opts ...Option) *Aggregator {
	a := &Aggregator{
		tokens: append([]model.TokenDescriptor(nil), tokens...),
		query:  query,
	}
	for _, opt := range opts {
		opt(a)
	}
	for idx, token := range a.tokens {
		if !utils.IsAddress(token.Address) {
			a.tokenErr = fmt.Errorf("%w: bad contract address %q for %s at index %d", ErrInvalidToken, token.Address, token.Symbol, idx)
			break
		}
	}
	return a
}

// Aggregate returns the strictly positive balances of account in token order.
//
// A nil error with an empty slice means the account holds none of the
// tokens. Any failed read aborts the whole pass and returns a *QueryError
// with no balances. A malformed token descriptor fails every call with
// ErrInvalidToken before any query is issued.
func (a *Aggregator) Aggregate(ctx context.Context, account string) ([]model.DisplayBalance, error) {
	if a.tokenErr != nil {
		return nil, a.tokenErr
	}
	if !utils.IsAddress(account) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, account)
	}
	owner := common.HexToAddress(strings.TrimSpace(account))

	slots := make([]model.RawBalance, len(a.tokens))

	g, gctx := errgroup.WithContext(ctx)
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, token := range a.tokens {
		i, token := i, token
		g.Go(func() error {
			raw, err := a.fetch(gctx, token, owner)
			if err != nil {
				return err
			}
			slots[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	balances := make([]model.DisplayBalance, 0, len(slots))
	for i, raw := range slots {
		if raw.Value.Sign() == 0 {
			continue
		}
		symbol := strings.TrimSpace(raw.Symbol)
		if symbol == "" {
			symbol = a.tokens[i].Symbol
		}
		balances = append(balances, model.DisplayBalance{
			Symbol: symbol,
			Amount: utils.FormatUnits(raw.Value, int(raw.Decimals)),
		})
	}
	return balances, nil
}

// fetch issues the three reads for one token concurrently.
func (a *Aggregator) fetch(ctx context.Context, token model.TokenDescriptor, owner common.Address) (model.RawBalance, error) {
	contract := common.HexToAddress(strings.TrimSpace(token.Address))

	var raw model.RawBalance
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := a.query.BalanceOf(gctx, contract, owner)
		if err != nil {
			return &QueryError{Token: token, Operation: "balanceOf", Err: err}
		}
		if v == nil {
			return &QueryError{Token: token, Operation: "balanceOf", Err: errors.New("nil balance")}
		}
		if v.Sign() < 0 {
			return &QueryError{Token: token, Operation: "balanceOf", Err: fmt.Errorf("negative balance %s", v.String())}
		}
		raw.Value = v
		return nil
	})
	g.Go(func() error {
		d, err := a.query.Decimals(gctx, contract)
		if err != nil {
			return &QueryError{Token: token, Operation: "decimals", Err: err}
		}
		raw.Decimals = d
		return nil
	})
	g.Go(func() error {
		s, err := a.query.Symbol(gctx, contract)
		if err != nil {
			return &QueryError{Token: token, Operation: "symbol", Err: err}
		}
		raw.Symbol = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.RawBalance{}, err
	}
	return raw, nil
}
