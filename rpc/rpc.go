package rpc

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// DefaultTimeout bounds dialing and single provider calls
const DefaultTimeout = 8 * time.Second

// Client wraps a wallet provider JSON-RPC connection
type Client struct {
	*ethclient.Client
	Raw *gethrpc.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client *Client
	Error  error
}

// ConnectWithTimeout attempts to connect with a custom timeout
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	raw, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	return ConnectResult{
		Client: &Client{
			Client: ethclient.NewClient(raw),
			Raw:    raw,
			URL:    url,
		},
		Error: nil,
	}
}

// SupportsNotifications reports whether the transport can deliver eth_subscribe pushes
func (c *Client) SupportsNotifications() bool {
	return c != nil && c.Raw != nil && c.Raw.SupportsSubscriptions()
}

// NetworkName maps well-known chain ids to display names
func NetworkName(chainID *big.Int) string {
	if chainID == nil {
		return ""
	}
	switch chainID.Uint64() {
	case 1:
		return "mainnet"
	case 11155111:
		return "sepolia"
	case 17000:
		return "holesky"
	case 137:
		return "polygon"
	case 80002:
		return "amoy"
	default:
		return "chain " + chainID.String()
	}
}

// Close releases the underlying connection
func (c *Client) Close() {
	if c != nil && c.Raw != nil {
		c.Raw.Close()
	}
}
