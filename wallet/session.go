package wallet

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Session holds the connected accounts reported by a provider.
// It is owned by the UI goroutine and never shared.
type Session struct {
	provider  Provider
	addresses []common.Address
	selected  common.Address
	chainID   *big.Int
	ensName   string
	err       error
}

// NewSession creates a session bound to p, which may be nil
func NewSession(p Provider) *Session {
	return &Session{provider: p}
}

func (s *Session) Provider() Provider { return s.provider }

// Connected reports whether an address is selected
func (s *Session) Connected() bool { return s.selected != (common.Address{}) }

// Addresses returns a copy of the connected addresses in provider order
func (s *Session) Addresses() []common.Address {
	out := make([]common.Address, len(s.addresses))
	copy(out, s.addresses)
	return out
}

// Selected returns the selected address and whether one is set
func (s *Session) Selected() (common.Address, bool) {
	return s.selected, s.Connected()
}

func (s *Session) Err() error { return s.err }

func (s *Session) ChainID() *big.Int { return s.chainID }

func (s *Session) SetChainID(id *big.Int) { s.chainID = id }

// ENSName is the reverse-resolved name of the selected address, if any
func (s *Session) ENSName() string { return s.ensName }

func (s *Session) SetENSName(n string) { s.ensName = n }

// SetAccounts replaces the account list. The current selection is kept while it
// is still present, otherwise the first account is selected. An empty list
// disconnects. changed reports whether the selected address moved.
func (s *Session) SetAccounts(accts []common.Address) (selected common.Address, changed bool) {
	prev := s.selected
	s.err = nil

	if len(accts) == 0 {
		s.Disconnect()
		return common.Address{}, prev != (common.Address{})
	}

	s.addresses = append(s.addresses[:0:0], accts...)
	if !s.has(prev) {
		s.selected = accts[0]
		s.ensName = ""
	}
	return s.selected, s.selected != prev
}

// Fail records the last connection error without touching the accounts
func (s *Session) Fail(err error) { s.err = err }

// Select switches to another connected address
func (s *Session) Select(addr common.Address) error {
	if !s.has(addr) {
		return fmt.Errorf("address %s is not connected", addr.Hex())
	}
	if addr != s.selected {
		s.ensName = ""
	}
	s.selected = addr
	return nil
}

// Disconnect clears local state only; provider-side authorization is untouched
func (s *Session) Disconnect() {
	s.addresses = nil
	s.selected = common.Address{}
	s.ensName = ""
	s.err = nil
}

func (s *Session) has(addr common.Address) bool {
	if addr == (common.Address{}) {
		return false
	}
	for _, a := range s.addresses {
		if a == addr {
			return true
		}
	}
	return false
}
