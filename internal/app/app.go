package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ohmynofan/token-balance-checker/internal/adapters/chain"
	"github.com/ohmynofan/token-balance-checker/internal/app/balance"
	"github.com/ohmynofan/token-balance-checker/internal/config"
	"github.com/ohmynofan/token-balance-checker/internal/domain/model"
	"github.com/ohmynofan/token-balance-checker/internal/platform/logger"
	"github.com/ohmynofan/token-balance-checker/internal/platform/ui"
)

type App struct {
	cfg config.Config
}

func New(cfg config.Config) *App { return &App{cfg: cfg} }

// Run checks every address and renders the results in input order.
func (app *App) Run(ctx context.Context, addresses []string) error {
	log := logger.NewNamed("App", nil)

	tokens, err := app.cfg.LoadTokens()
	if err != nil {
		return err
	}
	log.LogObject("Loaded config", app.cfg)
	log.JustLog(fmt.Sprintf("Checking %d account(s) across %d token(s)", len(addresses), len(tokens)))

	ec, err := chain.New(app.cfg, app.cfg.Network)
	if err != nil {
		return err
	}
	defer ec.Close()

	agg := balance.New(tokens, ec, balance.WithConcurrency(app.cfg.MaxConcurrentTokens))

	ui.StartUISystem()
	sessions := CheckAll(ctx, agg, addresses)
	ui.StopUISystem()

	for _, session := range sessions {
		ui.RenderResult(*session)
	}
	return nil
}

// CheckAll aggregates each address concurrently and returns one session per
// address, in the same order.
func CheckAll(ctx context.Context, agg *balance.Aggregator, addresses []string) []*model.Session {
	sessions := make([]*model.Session, len(addresses))

	var wg sync.WaitGroup
	for idx, addr := range addresses {
		session := &model.Session{Account: addr, AccIdx: idx, Status: model.StatusPending}
		sessions[idx] = session

		wg.Add(1)
		go func(s *model.Session) {
			defer wg.Done()
			Check(ctx, agg, s)
		}(session)
	}
	wg.Wait()
	return sessions
}

// Check runs one aggregation and records its outcome on the session.
func Check(ctx context.Context, agg *balance.Aggregator, session *model.Session) {
	log := logger.NewNamed(fmt.Sprintf("Check - Account %d", session.AccIdx+1), session)

	session.Status = model.StatusChecking
	log.Log(fmt.Sprintf("Fetching balances for %s", session.Account))

	balances, err := agg.Aggregate(ctx, session.Account)
	switch {
	case errors.Is(err, balance.ErrInvalidAddress):
		session.Status = model.StatusInvalid
		session.Err = err
		log.JustLog(err.Error())
		ui.SetSpinnerError(*session, "Invalid address")
	case err != nil:
		session.Status = model.StatusFailed
		session.Err = err
		log.JustLog(fmt.Sprintf("Aggregation failed: %v", err))
		ui.SetSpinnerError(*session, "Balance check failed")
	default:
		session.Address = session.Account
		session.Status = model.StatusDone
		session.WalletBalance = model.WalletBalance{Balances: balances}
		log.LogObject("Balances", session.WalletBalance)
		ui.SetSpinnerSuccess(*session, fmt.Sprintf("%d non-zero balance(s)", len(balances)))
	}
}
