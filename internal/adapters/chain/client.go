package chain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ohmynofan/token-balance-checker/internal/config"
	"github.com/ohmynofan/token-balance-checker/internal/platform/logger"
)

// ErrNoContractCode means eth_call returned nothing, which is what a node
// answers for an address without code.
var ErrNoContractCode = errors.New("empty call result (no contract code at address?)")

const erc20ABIJSON = `[
	{"constant":true,"inputs":[{"name":"_owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"balance","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"}
]`

var erc20ABI = mustParseABI(erc20ABIJSON)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("chain: invalid erc20 abi: %v", err))
	}
	return parsed
}

type EthersClient struct {
	caller     ethereum.ContractCaller
	client     *ethclient.Client
	network    config.Network
	timeout    time.Duration
	log        *logger.ClassLogger
	ownsClient bool
}

func New(cfg config.Config, network config.Network) (*EthersClient, error) {
	scope := "[New EtherClient] Error :"
	log := logger.NewNamed("EthersClient", nil)
	log.JustLog(fmt.Sprintf("Initializing Ethers Client on %s (%s)...", network.Name, network.RPCURL))

	client, err := ethclient.Dial(network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("%s failed to connect RPC (%s): %w", scope, network.Name, err)
	}

	ec := NewWithCaller(client, network, cfg.QueryTimeout)
	ec.client = client
	ec.ownsClient = true
	return ec, nil
}

// NewWithCaller builds a client over any contract caller, e.g. a simulated
// backend or a test double. The caller is not closed by Close.
func NewWithCaller(caller ethereum.ContractCaller, network config.Network, timeout time.Duration) *EthersClient {
	ec := &EthersClient{caller: caller, network: network, timeout: timeout}
	ec.log = logger.NewLogger(ec, nil)
	return ec
}

func (e *EthersClient) Close() {
	if e.client != nil && e.ownsClient {
		e.client.Close()
	}
}

func (e *EthersClient) BalanceOf(ctx context.Context, contract, account common.Address) (*big.Int, error) {
	scope := "[BalanceOf] Error :"
	out, err := e.call(ctx, contract, "balanceOf", account)
	if err != nil {
		return nil, fmt.Errorf("%s %w", scope, err)
	}

	values, err := erc20ABI.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("%s malformed response from %s: %w", scope, contract.Hex(), err)
	}
	balance, ok := values[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("%s unexpected balance type %T", scope, values[0])
	}
	return balance, nil
}

func (e *EthersClient) Decimals(ctx context.Context, contract common.Address) (uint8, error) {
	scope := "[Decimals] Error :"
	out, err := e.call(ctx, contract, "decimals")
	if err != nil {
		return 0, fmt.Errorf("%s %w", scope, err)
	}

	values, err := erc20ABI.Unpack("decimals", out)
	if err != nil {
		return 0, fmt.Errorf("%s malformed response from %s: %w", scope, contract.Hex(), err)
	}
	decimals, ok := values[0].(uint8)
	if !ok {
		return 0, fmt.Errorf("%s unexpected decimals type %T", scope, values[0])
	}
	return decimals, nil
}

// Symbol decodes the ABI string return value, falling back to a bytes32
// return for older tokens such as MKR.
func (e *EthersClient) Symbol(ctx context.Context, contract common.Address) (string, error) {
	scope := "[Symbol] Error :"
	out, err := e.call(ctx, contract, "symbol")
	if err != nil {
		return "", fmt.Errorf("%s %w", scope, err)
	}

	values, err := erc20ABI.Unpack("symbol", out)
	if err == nil {
		if symbol, ok := values[0].(string); ok {
			return symbol, nil
		}
	}

	if len(out) == common.HashLength {
		if raw := bytes.TrimRight(out, "\x00"); utf8.Valid(raw) {
			return string(raw), nil
		}
	}
	return "", fmt.Errorf("%s malformed response from %s: %s", scope, contract.Hex(), hexutil.Encode(out))
}

func (e *EthersClient) call(ctx context.Context, contract common.Address, method string, args ...interface{}) ([]byte, error) {
	if e.caller == nil {
		return nil, fmt.Errorf("ethers client not initialized")
	}

	data, err := erc20ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s call: %w", method, err)
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	out, err := e.caller.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("eth_call %s on %s (%s) failed: %w", method, contract.Hex(), e.network.Name, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("eth_call %s on %s: %w", method, contract.Hex(), ErrNoContractCode)
	}

	e.log.JustLog(fmt.Sprintf("eth_call %s on %s -> %s", method, contract.Hex(), hexutil.Encode(out)))
	return out, nil
}
