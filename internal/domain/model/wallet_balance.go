package model

import "math/big"

// TokenDescriptor names one ERC-20 contract from static configuration.
// Symbol is only a display fallback; the contract's own symbol() wins.
type TokenDescriptor struct {
	Symbol  string `yaml:"symbol" json:"symbol"`
	Address string `yaml:"address" json:"address"`
}

// RawBalance is what the ledger reports for one token and one account.
type RawBalance struct {
	Value    *big.Int
	Decimals uint8
	Symbol   string
}

// DisplayBalance is a strictly positive balance rendered as an exact decimal.
type DisplayBalance struct {
	Symbol string
	Amount string
}

type WalletBalance struct {
	Balances []DisplayBalance
}
