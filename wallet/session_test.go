package wallet

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSetAccounts(t *testing.T) {
	carol := common.HexToAddress("0x3333333333333333333333333333333333333333")

	s := NewSession(nil)
	assert.False(t, s.Connected())

	sel, changed := s.SetAccounts([]common.Address{alice, bob})
	assert.Equal(t, alice, sel)
	assert.True(t, changed)
	assert.True(t, s.Connected())

	require.NoError(t, s.Select(bob))

	t.Run("selection survives while still present", func(t *testing.T) {
		sel, changed := s.SetAccounts([]common.Address{carol, bob})
		assert.Equal(t, bob, sel)
		assert.False(t, changed)
		assert.Equal(t, []common.Address{carol, bob}, s.Addresses())
	})

	t.Run("first account selected when previous one is gone", func(t *testing.T) {
		sel, changed := s.SetAccounts([]common.Address{carol, alice})
		assert.Equal(t, carol, sel)
		assert.True(t, changed)
	})

	t.Run("empty list disconnects", func(t *testing.T) {
		sel, changed := s.SetAccounts(nil)
		assert.Equal(t, common.Address{}, sel)
		assert.True(t, changed)
		assert.False(t, s.Connected())
		assert.Empty(t, s.Addresses())
	})
}

func TestSessionSelectedIsAlwaysConnected(t *testing.T) {
	s := NewSession(nil)
	s.SetAccounts([]common.Address{alice})

	err := s.Select(bob)
	assert.Error(t, err)
	sel, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, alice, sel)
	assert.Contains(t, s.Addresses(), sel)
}

func TestSessionDisconnect(t *testing.T) {
	s := NewSession(nil)
	s.SetAccounts([]common.Address{alice, bob})
	s.SetENSName("alice.eth")
	s.Fail(errors.New("boom"))

	s.Disconnect()

	sel, ok := s.Selected()
	assert.False(t, ok)
	assert.Equal(t, common.Address{}, sel)
	assert.Empty(t, s.Addresses())
	assert.Empty(t, s.ENSName())
	assert.NoError(t, s.Err())
}

func TestSessionFailKeepsAccounts(t *testing.T) {
	s := NewSession(nil)
	s.SetAccounts([]common.Address{alice})
	s.Fail(ErrUserRejected)

	assert.ErrorIs(t, s.Err(), ErrUserRejected)
	assert.True(t, s.Connected())
}

func TestSessionAddressesIsACopy(t *testing.T) {
	s := NewSession(nil)
	s.SetAccounts([]common.Address{alice, bob})
	out := s.Addresses()
	out[0] = bob
	assert.Equal(t, []common.Address{alice, bob}, s.Addresses())
}
