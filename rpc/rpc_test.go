package rpc

import (
	"context"
	"math/big"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chainService struct{ id int64 }

func (s *chainService) ChainId() *hexutil.Big {
	return (*hexutil.Big)(big.NewInt(s.id))
}

func newChainServer(t *testing.T, id int64) *httptest.Server {
	t.Helper()
	srv := gethrpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", &chainService{id: id}))
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		srv.Stop()
	})
	return ts
}

func TestConnect(t *testing.T) {
	ts := newChainServer(t, 11155111)

	t.Run("successful connection", func(t *testing.T) {
		result := ConnectWithTimeout(ts.URL, DefaultTimeout)
		require.NoError(t, result.Error)
		require.NotNil(t, result.Client)
		defer result.Client.Close()

		assert.Equal(t, ts.URL, result.Client.URL)
		assert.False(t, result.Client.SupportsNotifications(), "http transport has no push notifications")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		chainID, err := result.Client.ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(11155111), chainID.Int64())
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		result := ConnectWithTimeout("ftp://example.invalid", time.Second)
		assert.Error(t, result.Error)
		assert.Nil(t, result.Client)
	})
}

func TestNetworkName(t *testing.T) {
	assert.Equal(t, "", NetworkName(nil))
	assert.Equal(t, "mainnet", NetworkName(big.NewInt(1)))
	assert.Equal(t, "polygon", NetworkName(big.NewInt(137)))
	assert.Equal(t, "chain 31337", NetworkName(big.NewInt(31337)))
}

func TestNilClientClose(t *testing.T) {
	var c *Client
	assert.NotPanics(t, c.Close)
	assert.False(t, c.SupportsNotifications())
}

func TestConnectWithActiveProviderURL(t *testing.T) {
	providerURL := os.Getenv("WALLET_PROVIDER_URL")
	if providerURL == "" {
		t.Skip("WALLET_PROVIDER_URL not set, skipping live provider test")
	}

	result := ConnectWithTimeout(providerURL, DefaultTimeout)
	require.NoError(t, result.Error)
	defer result.Client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	chainID, err := result.Client.ChainID(ctx)
	require.NoError(t, err)
	t.Logf("connected to %s", NetworkName(chainID))
}
