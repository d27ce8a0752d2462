package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohmynofan/token-balance-checker/internal/domain/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"RPC_URL", "TOKENS_PATH", "ADDRESSES_PATH", "QUERY_TIMEOUT_SECONDS", "MAX_CONCURRENT_TOKENS"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, Ethereum, cfg.Network)
	assert.Equal(t, defaultTokensPath, cfg.TokensPath)
	assert.Equal(t, defaultAddressesPath, cfg.AddressesPath)
	assert.Equal(t, 15*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 0, cfg.MaxConcurrentTokens)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("RPC_URL", " http://localhost:8545 ")
	t.Setenv("TOKENS_PATH", "my/tokens.yaml")
	t.Setenv("ADDRESSES_PATH", "my/addresses.json")
	t.Setenv("QUERY_TIMEOUT_SECONDS", "3")
	t.Setenv("MAX_CONCURRENT_TOKENS", "2")

	cfg := FromEnv()

	assert.Equal(t, "http://localhost:8545", cfg.Network.RPCURL)
	assert.Equal(t, "Ethereum Mainnet", cfg.Network.Name)
	assert.Equal(t, "my/tokens.yaml", cfg.TokensPath)
	assert.Equal(t, "my/addresses.json", cfg.AddressesPath)
	assert.Equal(t, 3*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 2, cfg.MaxConcurrentTokens)
}

func TestFromEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT_SECONDS", "soon")
	t.Setenv("MAX_CONCURRENT_TOKENS", "-4")

	cfg := FromEnv()

	assert.Equal(t, 15*time.Second, cfg.QueryTimeout)
	assert.Equal(t, 0, cfg.MaxConcurrentTokens)
}

func TestValidate(t *testing.T) {
	cfg := Config{Network: Network{RPCURL: ""}, QueryTimeout: time.Second}
	assert.ErrorContains(t, cfg.Validate(), "RPC_URL")

	cfg = Config{Network: Ethereum, QueryTimeout: 0}
	assert.ErrorContains(t, cfg.Validate(), "QUERY_TIMEOUT_SECONDS")
}

func TestLoadTokensYAML(t *testing.T) {
	path := writeFile(t, "tokens.yaml", `
tokens:
  - symbol: DAI
    address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"
  - symbol: " USDT "
    address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"
`)

	tokens, err := Config{TokensPath: path}.LoadTokens()

	require.NoError(t, err)
	assert.Equal(t, []model.TokenDescriptor{
		{Symbol: "DAI", Address: "0x6B175474E89094C44Da98b954EedeAC495271d0F"},
		{Symbol: "USDT", Address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"},
	}, tokens)
}

func TestLoadTokensJSONList(t *testing.T) {
	path := writeFile(t, "tokens.json", `[{"symbol":"USDC","address":"0xA0b86991c6218b36c1d19D4a2e9EB0cE3606EB48"}]`)

	tokens, err := Config{TokensPath: path}.LoadTokens()

	require.NoError(t, err)
	assert.Equal(t, []model.TokenDescriptor{{Symbol: "USDC", Address: "0xA0b86991c6218b36c1d19D4a2e9EB0cE3606EB48"}}, tokens)
}

func TestLoadTokensMissingFileFallsBackToDefaults(t *testing.T) {
	tokens, err := Config{TokensPath: filepath.Join(t.TempDir(), "nope.yaml")}.LoadTokens()

	require.NoError(t, err)
	assert.Equal(t, DefaultTokens, tokens)

	tokens[0].Symbol = "changed"
	assert.Equal(t, "USDT", DefaultTokens[0].Symbol)
}

func TestLoadTokensRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"bad address":  "tokens:\n  - symbol: X\n    address: \"0x1234\"\n",
		"empty symbol": "tokens:\n  - symbol: \"\"\n    address: \"0x6B175474E89094C44Da98b954EedeAC495271d0F\"\n",
		"no tokens":    "tokens: []\n",
		"not yaml":     "tokens: [\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Config{TokensPath: writeFile(t, "tokens.yaml", content)}.LoadTokens()
			assert.Error(t, err)
		})
	}
}

func TestLoadAddresses(t *testing.T) {
	path := writeFile(t, "addresses.json", `[" 0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED ", "0x123"]`)
	accounts, err := Config{AddressesPath: path}.LoadAddresses()
	require.NoError(t, err)
	assert.Equal(t, []Account{{Address: "0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED"}, {Address: "0x123"}}, accounts)

	path = writeFile(t, "addresses.json", `[{"address":"0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED"}]`)
	accounts, err = Config{AddressesPath: path}.LoadAddresses()
	require.NoError(t, err)
	assert.Equal(t, []Account{{Address: "0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED"}}, accounts)

	path = writeFile(t, "addresses.json", `[{"address":"  0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED\t"}]`)
	accounts, err = Config{AddressesPath: path}.LoadAddresses()
	require.NoError(t, err)
	assert.Equal(t, []Account{{Address: "0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED"}}, accounts)

	path = writeFile(t, "addresses.json", `[{"address":"0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED"}, {"address":"  "}]`)
	_, err = Config{AddressesPath: path}.LoadAddresses()
	assert.ErrorContains(t, err, "empty address at index 1")

	path = writeFile(t, "addresses.json", `["", "0x9134fc7112b478e97eE6F0E6A7bf81EcAfef19ED"]`)
	_, err = Config{AddressesPath: path}.LoadAddresses()
	assert.ErrorContains(t, err, "index 0")

	accounts, err = Config{AddressesPath: filepath.Join(t.TempDir(), "missing.json")}.LoadAddresses()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
