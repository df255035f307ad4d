package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"cellar-transfer-tui/rpc"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	goens "github.com/wealdtech/go-ens/v3"
)

// DefaultPollInterval is used when the transport cannot push accountsChanged
const DefaultPollInterval = 4 * time.Second

// Provider is an EIP-1193 style wallet endpoint
type Provider interface {
	// ListAccounts returns already-authorized accounts without prompting
	ListAccounts(ctx context.Context) ([]common.Address, error)
	// RequestAccounts asks the wallet to authorize accounts, which may prompt the user
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// SubscribeAccounts streams account list changes until the subscription is released
	SubscribeAccounts(ctx context.Context, ch chan<- []common.Address) (ethereum.Subscription, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// NameResolver is implemented by providers able to reverse-resolve ENS names
type NameResolver interface {
	ReverseResolve(ctx context.Context, addr common.Address) (string, error)
}

// RPCProvider talks to a wallet over JSON-RPC (websocket, http or IPC)
type RPCProvider struct {
	url          string
	timeout      time.Duration
	pollInterval time.Duration

	mu     sync.Mutex
	client *rpc.Client
}

// Option configures an RPCProvider
type Option func(*RPCProvider)

// WithPollInterval sets the eth_accounts polling period used on transports without notifications
func WithPollInterval(d time.Duration) Option {
	return func(p *RPCProvider) { p.pollInterval = d }
}

// WithTimeout sets the dial timeout
func WithTimeout(d time.Duration) Option {
	return func(p *RPCProvider) { p.timeout = d }
}

// NewRPCProvider returns nil when url is empty, meaning no provider is available
func NewRPCProvider(url string, opts ...Option) *RPCProvider {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil
	}
	p := &RPCProvider{
		url:          url,
		timeout:      rpc.DefaultTimeout,
		pollInterval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// URL returns the endpoint the provider dials
func (p *RPCProvider) URL() string { return p.url }

func (p *RPCProvider) conn() (*rpc.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	res := rpc.ConnectWithTimeout(p.url, p.timeout)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderMissing, res.Error)
	}
	p.client = res.Client
	return p.client, nil
}

func (p *RPCProvider) accounts(ctx context.Context, method string) ([]common.Address, error) {
	c, err := p.conn()
	if err != nil {
		return nil, err
	}
	var out []common.Address
	if err := c.Raw.CallContext(ctx, &out, method); err != nil {
		return nil, classify(method, err)
	}
	return out, nil
}

// ListAccounts calls eth_accounts
func (p *RPCProvider) ListAccounts(ctx context.Context) ([]common.Address, error) {
	return p.accounts(ctx, "eth_accounts")
}

// RequestAccounts calls eth_requestAccounts
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	return p.accounts(ctx, "eth_requestAccounts")
}

// ChainID calls eth_chainId
func (p *RPCProvider) ChainID(ctx context.Context) (*big.Int, error) {
	c, err := p.conn()
	if err != nil {
		return nil, err
	}
	id, err := c.ChainID(ctx)
	if err != nil {
		return nil, classify("eth_chainId", err)
	}
	return id, nil
}

// SubscribeAccounts prefers eth_subscribe("accountsChanged") and falls back to polling eth_accounts
func (p *RPCProvider) SubscribeAccounts(ctx context.Context, ch chan<- []common.Address) (ethereum.Subscription, error) {
	c, err := p.conn()
	if err != nil {
		return nil, err
	}
	if c.SupportsNotifications() {
		sub, err := c.Raw.EthSubscribe(ctx, ch, "accountsChanged")
		if err == nil {
			return sub, nil
		}
		var rpcErr gethrpc.Error
		if !errors.Is(err, gethrpc.ErrNotificationsUnsupported) && !errors.As(err, &rpcErr) {
			return nil, classify("eth_subscribe", err)
		}
	}
	return p.poll(ch), nil
}

func (p *RPCProvider) poll(ch chan<- []common.Address) ethereum.Subscription {
	interval := p.pollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return event.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		var last []common.Address
		seeded := false
		for {
			select {
			case <-quit:
				return nil
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), interval)
				accts, err := p.ListAccounts(ctx)
				cancel()
				if err != nil {
					continue
				}
				if seeded && sameAccounts(last, accts) {
					continue
				}
				seeded = true
				last = accts
				select {
				case ch <- accts:
				case <-quit:
					return nil
				}
			}
		}
	})
}

// ReverseResolve looks up the primary ENS name of addr on the provider's chain
func (p *RPCProvider) ReverseResolve(ctx context.Context, addr common.Address) (string, error) {
	c, err := p.conn()
	if err != nil {
		return "", err
	}
	type result struct {
		name string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		name, err := goens.ReverseResolve(c.Client, addr)
		done <- result{name, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.name, r.err
	}
}

// Close releases the connection, if one was made
func (p *RPCProvider) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client.Close()
	p.client = nil
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Probe queries already-authorized accounts without prompting.
// A missing provider yields no accounts and no error.
func Probe(ctx context.Context, p Provider) ([]common.Address, error) {
	if isNil(p) {
		return nil, nil
	}
	return p.ListAccounts(ctx)
}

// Request runs the wallet's account authorization flow
func Request(ctx context.Context, p Provider) ([]common.Address, error) {
	if isNil(p) {
		return nil, ErrProviderMissing
	}
	accts, err := p.RequestAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if len(accts) == 0 {
		return nil, &ProviderError{Op: "eth_requestAccounts", Err: errors.New("no accounts returned")}
	}
	return accts, nil
}

func isNil(p Provider) bool {
	if p == nil {
		return true
	}
	rp, ok := p.(*RPCProvider)
	return ok && rp == nil
}
