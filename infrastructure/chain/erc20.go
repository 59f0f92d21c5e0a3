package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"payable":false,"stateMutability":"view","type":"function"},
	{"constant":true,"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"payable":false,"stateMutability":"view","type":"function"}
]`

// Token is a read-only ERC20 client. The reconcile task uses it to compare
// the ledger's custody books against the balances actually held on chain.
type Token struct {
	contract *bind.BoundContract
	address  common.Address
}

func NewToken(client *ethclient.Client, address common.Address) (*Token, error) {
	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 abi: %w", err)
	}

	return &Token{
		contract: bind.NewBoundContract(address, parsed, client, client, client),
		address:  address,
	}, nil
}

func (token *Token) Address() common.Address {
	return token.address
}

func (token *Token) BalanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	var result []interface{}
	err := token.contract.Call(&bind.CallOpts{Context: ctx}, &result, "balanceOf", account)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}

	if len(result) == 0 {
		return big.NewInt(0), nil
	}
	if balance, ok := result[0].(*big.Int); ok {
		return balance, nil
	}
	return big.NewInt(0), nil
}

func (token *Token) Decimals(ctx context.Context) (uint8, error) {
	var result []interface{}
	err := token.contract.Call(&bind.CallOpts{Context: ctx}, &result, "decimals")
	if err != nil {
		return 0, fmt.Errorf("failed to get decimals: %w", err)
	}

	if len(result) == 0 {
		return 0, nil
	}
	if decimals, ok := result[0].(uint8); ok {
		return decimals, nil
	}
	return 0, nil
}

func (token *Token) Symbol(ctx context.Context) (string, error) {
	var result []interface{}
	err := token.contract.Call(&bind.CallOpts{Context: ctx}, &result, "symbol")
	if err != nil {
		return "", fmt.Errorf("failed to get symbol: %w", err)
	}

	if len(result) == 0 {
		return "", nil
	}
	if symbol, ok := result[0].(string); ok {
		return symbol, nil
	}
	return "", nil
}
