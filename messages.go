package main

import (
	"math/big"

	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/thumbnail"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// walletProbedMsg carries the silent eth_accounts result at startup
type walletProbedMsg struct {
	accounts []common.Address
	err      error
}

// walletConnectedMsg carries the result of an explicit connect request
type walletConnectedMsg struct {
	accounts []common.Address
	err      error
}

// accountsSubscribedMsg reports the account-change subscription
type accountsSubscribedMsg struct {
	sub ethereum.Subscription
	ch  chan []common.Address
	err error
}

// accountsChangedMsg is one accountsChanged notification from the wallet
type accountsChangedMsg struct {
	sub      ethereum.Subscription
	accounts []common.Address
}

// accountsSubClosedMsg means the subscription ended; err is nil after Unsubscribe
type accountsSubClosedMsg struct {
	sub ethereum.Subscription
	err error
}

type chainIDMsg struct {
	id  *big.Int
	err error
}

// ensNameMsg contains result of reverse ENS lookup (address -> name)
type ensNameMsg struct {
	address common.Address
	name    string
	err     error
}

// galleryLoadedMsg is the token fetch for the gallery of owner
type galleryLoadedMsg struct {
	owner  common.Address
	tokens []indexer.OwnedToken
	err    error
}

// wizardTokensMsg is the step 1 token fetch, tagged with the wizard generation
type wizardTokensMsg struct {
	generation uint64
	tokens     []indexer.OwnedToken
	err        error
}

// thumbnailsLoadedMsg carries rendered token images
type thumbnailsLoadedMsg struct {
	results []thumbnail.Result
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
}

// toastExpiredMsg dismisses the toast with the given id
type toastExpiredMsg struct {
	id int
}
