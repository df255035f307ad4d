package badge

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	addr := common.HexToAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")

	assert.Contains(t, Render(State{}), "Connect Wallet")
	assert.Contains(t, Render(State{Connecting: true}), "Connecting")

	out := Render(State{Connected: true, Address: addr, Network: "mainnet"})
	assert.Contains(t, out, "0x5aAe…eAed")
	assert.Contains(t, out, "mainnet")
	assert.NotContains(t, out, "Connect Wallet")

	out = Render(State{Connected: true, Address: addr, ENSName: "cellar.eth"})
	assert.Contains(t, out, "cellar.eth")
	assert.NotContains(t, out, "0x5aAe")
}

func TestHelp(t *testing.T) {
	assert.Contains(t, Help(State{}), "connect")
	assert.Contains(t, Help(State{Connected: true}), "disconnect")
}
