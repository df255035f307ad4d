package details

import (
	"regexp"
	"testing"

	"cellar-transfer-tui/indexer"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m|\x1b\]8;;[^\x1b]*\x1b\\`)

func TestOpenSeaURL(t *testing.T) {
	assert.Equal(t,
		"https://opensea.io/assets/ethereum/0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed/42",
		OpenSeaURL("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "42"))
}

func TestRender(t *testing.T) {
	tok := indexer.OwnedToken{
		TokenID:         "42",
		ContractAddress: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		DisplayName:     "Bottle 42",
		ImageURL:        "https://img.example/42.png",
		Attributes:      map[string]string{"Vintage": "2019", "label": "Bitcoin Margaux", "reveal": "true"},
		Balance:         2,
		Revealed:        true,
		HasLabel:        true,
	}

	out := ansi.ReplaceAllString(Render(tok, "", "Copied token id"), "")
	assert.Contains(t, out, "Bottle 42")
	assert.Contains(t, out, "View on OpenSea")
	assert.Contains(t, out, "Copied token id")
	assert.Contains(t, out, "2019")
	assert.Contains(t, out, "Bitcoin Margaux")
	assert.Contains(t, out, "https://img.example/42.png")
	assert.Regexp(t, `Revealed\s+yes`, out)
	assert.Regexp(t, `Redeemed\s+no`, out)

	// attributes are listed in key order
	assert.Regexp(t, `(?s)Vintage  2019.*label  Bitcoin Margaux.*reveal  true`, out)

	assert.Contains(t, Render(tok, "", ""), OpenSeaURL(tok.ContractAddress, tok.TokenID))
}

func TestRenderBannersAndEmptyAttributes(t *testing.T) {
	tok := indexer.OwnedToken{TokenID: "7", ExternallyRedeemed: true, Redeemed: true}
	out := ansi.ReplaceAllString(Render(tok, "", ""), "")
	assert.Contains(t, out, "Token #7")
	assert.Contains(t, out, "No attributes in token metadata.")
	assert.Contains(t, out, indexer.BannerExternallyRedeemed.String())
	assert.NotContains(t, out, "Image ")
}
