package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/ohmynofan/token-balance-checker/internal/domain/model"
	"github.com/ohmynofan/token-balance-checker/pkg/utils"
)

const (
	msgNoBalances     = "No balances found for the listed tokens."
	msgInvalidAddress = "Invalid address. Please check that the address is correct."
	msgQueryFailed    = "Could not fetch balances"
)

var (
	multi    *pterm.MultiPrinter
	spinners = make(map[int]*pterm.SpinnerPrinter)
	mu       sync.Mutex
)

func StartUISystem() {
	m, _ := pterm.DefaultMultiPrinter.Start()
	multi = m
}

func StopUISystem() {
	mu.Lock()
	defer mu.Unlock()
	for _, spinner := range spinners {
		_ = spinner.Stop()
	}
	if multi != nil {
		_, _ = multi.Stop()
		multi = nil
	}
}

// UpdateStatus refreshes the live status line of one account. It is a no-op
// until StartUISystem has been called.
func UpdateStatus(session model.Session, status string) {
	mu.Lock()
	defer mu.Unlock()

	if multi == nil {
		return
	}

	content := fmt.Sprintf("Account %d  %s  [%s] %s",
		session.AccIdx+1,
		utils.ShortenAddress(defaultString(session.Address, session.Account)),
		session.Status,
		status)

	if spinner, ok := spinners[session.AccIdx]; ok {
		spinner.UpdateText(content)
	} else {
		spinner, _ := pterm.DefaultSpinner.
			WithWriter(multi.NewWriter()).
			WithRemoveWhenDone(false).
			Start(content)
		spinners[session.AccIdx] = spinner
	}
}

func SetSpinnerSuccess(session model.Session, finalMessage string) {
	mu.Lock()
	defer mu.Unlock()
	if spinner, ok := spinners[session.AccIdx]; ok {
		spinner.Success(finalMessage)
		delete(spinners, session.AccIdx)
	}
}

func SetSpinnerError(session model.Session, finalMessage string) {
	mu.Lock()
	defer mu.Unlock()
	if spinner, ok := spinners[session.AccIdx]; ok {
		spinner.Fail(finalMessage)
		delete(spinners, session.AccIdx)
	}
}

// FormatResult renders the outcome of one account check. An empty wallet,
// an invalid address and a failed query each render differently.
func FormatResult(session model.Session) string {
	var b strings.Builder

	header := fmt.Sprintf("=============== Account %d ================", session.AccIdx+1)
	b.WriteString(header + "\n")
	b.WriteString(fmt.Sprintf("Address : %s\n\n", defaultString(session.Address, session.Account)))

	switch session.Status {
	case model.StatusInvalid:
		b.WriteString(pterm.Red(msgInvalidAddress) + "\n")
	case model.StatusFailed:
		cause := "unknown error"
		if session.Err != nil {
			cause = session.Err.Error()
		}
		b.WriteString(pterm.Red(fmt.Sprintf("%s: %s", msgQueryFailed, cause)) + "\n")
	default:
		b.WriteString(formatBalances(session.WalletBalance) + "\n")
	}

	b.WriteString(strings.Repeat("=", len(header)))
	return b.String()
}

func RenderResult(session model.Session) {
	pterm.Println(FormatResult(session))
}

func formatBalances(wallet model.WalletBalance) string {
	if len(wallet.Balances) == 0 {
		return msgNoBalances
	}

	data := pterm.TableData{{"Token", "Balance"}}
	for _, tb := range wallet.Balances {
		data = append(data, []string{tb.Symbol, tb.Amount})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		var builder strings.Builder
		for _, tb := range wallet.Balances {
			builder.WriteString(fmt.Sprintf("- %s : %s\n", tb.Symbol, tb.Amount))
		}
		return strings.TrimRight(builder.String(), "\n")
	}
	return table
}

// PromptAddress asks for an address until validate accepts it.
func PromptAddress(validate func(string) bool) (string, error) {
	for {
		input, err := pterm.DefaultInteractiveTextInput.Show("Enter an Ethereum address")
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)
		if validate(input) {
			return input, nil
		}
		pterm.Error.Println(msgInvalidAddress)
	}
}

func defaultString(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}
