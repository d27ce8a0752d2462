package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ohmynofan/token-balance-checker/internal/domain/model"
)

const (
	defaultTokensPath    = "configs/tokens.yaml"
	defaultAddressesPath = "configs/addresses.json"
	defaultQueryTimeout  = 15
)

type Config struct {
	Network             Network
	TokensPath          string
	AddressesPath       string
	QueryTimeout        time.Duration
	MaxConcurrentTokens int
}

type Account struct {
	Address string `json:"address"`
}

// DefaultTokens is used when no token file is present.
var DefaultTokens = []model.TokenDescriptor{
	{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9EB0cE3606EB48"},
	{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
}

func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using default values")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without reading .env.
func FromEnv() Config {
	network := Ethereum
	if rpcURL := strings.TrimSpace(os.Getenv("RPC_URL")); rpcURL != "" {
		network.RPCURL = rpcURL
	}

	timeoutSeconds := parseIntWithDefault(os.Getenv("QUERY_TIMEOUT_SECONDS"), defaultQueryTimeout)

	return Config{
		Network:             network,
		TokensPath:          stringWithDefault(os.Getenv("TOKENS_PATH"), defaultTokensPath),
		AddressesPath:       stringWithDefault(os.Getenv("ADDRESSES_PATH"), defaultAddressesPath),
		QueryTimeout:        time.Duration(timeoutSeconds) * time.Second,
		MaxConcurrentTokens: parseIntWithDefault(os.Getenv("MAX_CONCURRENT_TOKENS"), 0),
	}
}

func parseIntWithDefault(value string, defaultVal int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultVal
	}
	if v, err := strconv.Atoi(value); err == nil && v >= 0 {
		return v
	}
	return defaultVal
}

func stringWithDefault(value, defaultVal string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return defaultVal
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Network.RPCURL) == "" {
		return errors.New("RPC_URL is required")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("QUERY_TIMEOUT_SECONDS must be greater than zero")
	}
	return nil
}

// LoadTokens reads the ordered token list. The file may be YAML or JSON; a
// missing file yields DefaultTokens.
func (c Config) LoadTokens() ([]model.TokenDescriptor, error) {
	b, err := os.ReadFile(c.TokensPath)
	if errors.Is(err, os.ErrNotExist) {
		return append([]model.TokenDescriptor(nil), DefaultTokens...), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tokens: %w", err)
	}

	var doc struct {
		Tokens []model.TokenDescriptor `yaml:"tokens"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		var list []model.TokenDescriptor
		if errList := yaml.Unmarshal(b, &list); errList != nil {
			return nil, fmt.Errorf("failed to unmarshal tokens: %w", err)
		}
		doc.Tokens = list
	}

	tokens := make([]model.TokenDescriptor, 0, len(doc.Tokens))
	for idx, tok := range doc.Tokens {
		tok.Symbol = strings.TrimSpace(tok.Symbol)
		tok.Address = strings.TrimSpace(tok.Address)
		if tok.Symbol == "" {
			return nil, fmt.Errorf("invalid token config: empty symbol at index %d", idx)
		}
		if !common.IsHexAddress(tok.Address) {
			return nil, fmt.Errorf("invalid token config: bad contract address %q at index %d", tok.Address, idx)
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("invalid token config: %s lists no tokens", c.TokensPath)
	}
	return tokens, nil
}

// LoadAddresses reads the accounts to check. A missing file yields no
// accounts and no error. Entries are not validated here; an invalid address
// is reported per account when it is checked.
func (c Config) LoadAddresses() ([]Account, error) {
	b, err := os.ReadFile(c.AddressesPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rawAccounts []string
	if err := json.Unmarshal(b, &rawAccounts); err == nil {
		accounts := make([]Account, 0, len(rawAccounts))
		for idx, entry := range rawAccounts {
			addr := strings.TrimSpace(entry)
			if addr == "" {
				return nil, fmt.Errorf("invalid account input: empty address at index %d", idx)
			}
			accounts = append(accounts, Account{Address: addr})
		}
		return accounts, nil
	}

	var accounts []Account
	if err := json.Unmarshal(b, &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal accounts: %w", err)
	}
	for idx := range accounts {
		accounts[idx].Address = strings.TrimSpace(accounts[idx].Address)
		if accounts[idx].Address == "" {
			return nil, fmt.Errorf("invalid account input: empty address at index %d", idx)
		}
	}

	return accounts, nil
}
