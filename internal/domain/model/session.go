package model

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusChecking Status = "CHECKING"
	StatusDone     Status = "DONE"
	StatusInvalid  Status = "INVALID ADDRESS"
	StatusFailed   Status = "FAILED"
)

// Session tracks one account through a balance check.
type Session struct {
	Account       string
	AccIdx        int
	Address       string
	Status        Status
	WalletBalance WalletBalance
	Err           error
}

