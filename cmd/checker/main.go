package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/ohmynofan/token-balance-checker/internal/app"
	"github.com/ohmynofan/token-balance-checker/internal/config"
	"github.com/ohmynofan/token-balance-checker/internal/platform/logger"
	"github.com/ohmynofan/token-balance-checker/internal/platform/ui"
	"github.com/ohmynofan/token-balance-checker/pkg/utils"
)

func main() {
	_ = logger.Init("logs/app.log")
	defer logger.Close()

	cfg := config.Load()

	if err := cfg.Validate(); err != nil {
		print(err.Error())
		os.Exit(1)
	}

	addresses, err := resolveAddresses(cfg)
	if err != nil {
		print(err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := app.New(cfg).Run(ctx, addresses); err != nil {
		print(err.Error())
		os.Exit(1)
	}
}

// resolveAddresses takes addresses from the command line, then from the
// addresses file, and finally prompts for one.
func resolveAddresses(cfg config.Config) ([]string, error) {
	var addresses []string
	for _, arg := range os.Args[1:] {
		if a := strings.TrimSpace(arg); a != "" {
			addresses = append(addresses, a)
		}
	}
	if len(addresses) > 0 {
		return addresses, nil
	}

	accounts, err := cfg.LoadAddresses()
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		addresses = append(addresses, acc.Address)
	}
	if len(addresses) > 0 {
		return addresses, nil
	}

	addr, err := ui.PromptAddress(utils.IsAddress)
	if err != nil {
		return nil, err
	}
	return []string{addr}, nil
}
