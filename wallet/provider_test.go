package wallet

import (
	"context"
	"errors"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

type codedError struct {
	code int
	msg  string
}

func (e codedError) Error() string  { return e.msg }
func (e codedError) ErrorCode() int { return e.code }

// fakeWallet serves the eth namespace of an injected-style wallet
type fakeWallet struct {
	mu         sync.Mutex
	authorized []common.Address
	requestErr error
}

func (w *fakeWallet) Accounts() []common.Address {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]common.Address{}, w.authorized...)
}

func (w *fakeWallet) RequestAccounts() ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.requestErr != nil {
		return nil, w.requestErr
	}
	if len(w.authorized) == 0 {
		w.authorized = []common.Address{alice, bob}
	}
	return append([]common.Address{}, w.authorized...), nil
}

func (w *fakeWallet) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(1))
}

func (w *fakeWallet) set(accts ...common.Address) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.authorized = accts
}

func newWalletServer(t *testing.T, w *fakeWallet) *httptest.Server {
	t.Helper()
	srv := gethrpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", w))
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Stop()
	})
	return ts
}

func TestNewRPCProviderEmptyURL(t *testing.T) {
	assert.Nil(t, NewRPCProvider("   "))
}

func TestProbe(t *testing.T) {
	ctx := context.Background()

	t.Run("nil provider is a silent no-op", func(t *testing.T) {
		accts, err := Probe(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, accts)

		var p *RPCProvider
		accts, err = Probe(ctx, p)
		assert.NoError(t, err)
		assert.Empty(t, accts)
	})

	t.Run("returns authorized accounts", func(t *testing.T) {
		w := &fakeWallet{authorized: []common.Address{bob}}
		p := NewRPCProvider(newWalletServer(t, w).URL)
		defer p.Close()

		accts, err := Probe(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, []common.Address{bob}, accts)
	})

	t.Run("no authorized accounts", func(t *testing.T) {
		p := NewRPCProvider(newWalletServer(t, &fakeWallet{}).URL)
		defer p.Close()

		accts, err := Probe(ctx, p)
		require.NoError(t, err)
		assert.Empty(t, accts)
	})
}

func TestRequest(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		setup  func(t *testing.T) Provider
		assert func(t *testing.T, accts []common.Address, err error)
	}{
		{
			name:  "missing provider",
			setup: func(t *testing.T) Provider { return nil },
			assert: func(t *testing.T, accts []common.Address, err error) {
				assert.ErrorIs(t, err, ErrProviderMissing)
				assert.Nil(t, accts)
			},
		},
		{
			name: "unreachable endpoint",
			setup: func(t *testing.T) Provider {
				ts := newWalletServer(t, &fakeWallet{})
				url := ts.URL
				ts.Close()
				return NewRPCProvider(url)
			},
			assert: func(t *testing.T, accts []common.Address, err error) {
				assert.ErrorIs(t, err, ErrProviderMissing)
			},
		},
		{
			name: "unsupported transport",
			setup: func(t *testing.T) Provider {
				return NewRPCProvider("ftp://wallet.invalid", WithTimeout(time.Second))
			},
			assert: func(t *testing.T, accts []common.Address, err error) {
				assert.ErrorIs(t, err, ErrProviderMissing)
			},
		},
		{
			name: "user rejects",
			setup: func(t *testing.T) Provider {
				w := &fakeWallet{requestErr: codedError{code: CodeUserRejected, msg: "User rejected the request."}}
				return NewRPCProvider(newWalletServer(t, w).URL)
			},
			assert: func(t *testing.T, accts []common.Address, err error) {
				assert.ErrorIs(t, err, ErrUserRejected)
				var perr *ProviderError
				assert.False(t, errors.As(err, &perr))
			},
		},
		{
			name: "other provider error",
			setup: func(t *testing.T) Provider {
				w := &fakeWallet{requestErr: codedError{code: 4100, msg: "unauthorized"}}
				return NewRPCProvider(newWalletServer(t, w).URL)
			},
			assert: func(t *testing.T, accts []common.Address, err error) {
				var perr *ProviderError
				require.ErrorAs(t, err, &perr)
				assert.Equal(t, 4100, perr.Code)
				assert.Equal(t, "eth_requestAccounts", perr.Op)
				assert.NotErrorIs(t, err, ErrUserRejected)
			},
		},
		{
			name: "success",
			setup: func(t *testing.T) Provider {
				return NewRPCProvider(newWalletServer(t, &fakeWallet{}).URL)
			},
			assert: func(t *testing.T, accts []common.Address, err error) {
				require.NoError(t, err)
				assert.Equal(t, []common.Address{alice, bob}, accts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accts, err := Request(ctx, tt.setup(t))
			tt.assert(t, accts, err)
		})
	}
}

func TestChainID(t *testing.T) {
	p := NewRPCProvider(newWalletServer(t, &fakeWallet{}).URL)
	defer p.Close()

	id, err := p.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Int64())
}

func TestSubscribeAccountsPollsOverHTTP(t *testing.T) {
	w := &fakeWallet{authorized: []common.Address{alice}}
	p := NewRPCProvider(newWalletServer(t, w).URL, WithPollInterval(20*time.Millisecond))
	defer p.Close()

	ch := make(chan []common.Address, 4)
	sub, err := p.SubscribeAccounts(context.Background(), ch)
	require.NoError(t, err)

	select {
	case accts := <-ch:
		assert.Equal(t, []common.Address{alice}, accts)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial account list")
	}

	w.set(bob, alice)
	select {
	case accts := <-ch:
		assert.Equal(t, []common.Address{bob, alice}, accts)
	case <-time.After(2 * time.Second):
		t.Fatal("account change not delivered")
	}

	sub.Unsubscribe()
	select {
	case err, ok := <-sub.Err():
		assert.False(t, ok)
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscription error channel not closed")
	}
}
