package tokens

import (
	"strings"
	"testing"

	"cellar-transfer-tui/indexer"

	"github.com/stretchr/testify/assert"
)

func opts() Options {
	return Options{Width: 120, CollectionURL: "https://example.com/collection", Cursor: -1}
}

func TestRenderStates(t *testing.T) {
	t.Run("loading shows placeholder rows", func(t *testing.T) {
		out := Render([]indexer.OwnedToken{{TokenID: "1"}}, true, true, opts())
		assert.Equal(t, SkeletonRows, strings.Count(out, "╭"))
		assert.NotContains(t, out, "Token ID")
	})

	t.Run("not connected", func(t *testing.T) {
		out := Render(nil, false, false, opts())
		assert.Contains(t, out, "Connect your wallet")
		assert.Contains(t, out, "Connect your wallet to see all your WineBottleClub NFTs.")
	})

	t.Run("empty", func(t *testing.T) {
		out := Render(nil, false, true, opts())
		assert.Contains(t, out, "No NFTs Found")
		assert.Contains(t, out, "https://example.com/collection")
	})
}

func TestCardFields(t *testing.T) {
	tok := indexer.OwnedToken{
		TokenID:     "42",
		Balance:     3,
		Attributes:  map[string]string{indexer.TraitVintage: "2019"},
		DisplayName: "Margaux 2019",
		Revealed:    true,
	}
	out := Render([]indexer.OwnedToken{tok}, false, true, opts())
	assert.Contains(t, out, "Margaux 2019")
	assert.Contains(t, out, "Vintage: 2019")
	assert.Contains(t, out, "Quantity: 3")
	assert.Contains(t, out, "Token ID: 42")
	assert.Contains(t, out, "No Image")

	out = Render([]indexer.OwnedToken{{TokenID: "7", Balance: 1}}, false, true, opts())
	assert.Contains(t, out, "Token #7")
	assert.Contains(t, out, "Vintage: N/A")
}

func TestCardImage(t *testing.T) {
	tok := indexer.OwnedToken{TokenID: "1", Balance: 1, ImageURL: "https://img/1.png"}
	o := opts()
	o.Thumbs = map[string]string{"1": "ART"}

	assert.Contains(t, Render([]indexer.OwnedToken{tok}, false, true, o), "ART")

	o.ImageFailed = map[string]bool{"1": true}
	out := Render([]indexer.OwnedToken{tok}, false, true, o)
	assert.NotContains(t, out, "ART")
	assert.Contains(t, out, "No Image")
}

func TestBannersFollowAttributes(t *testing.T) {
	tests := []struct {
		name string
		tok  indexer.OwnedToken
		want []indexer.Banner
	}{
		{
			name: "clean",
			tok:  indexer.OwnedToken{TokenID: "1", Revealed: true},
		},
		{
			name: "not revealed and redeemed",
			tok: indexer.OwnedToken{
				TokenID:      "2",
				Attributes:   map[string]string{"reveal": "false", "redeem": "true"},
				RedeemedAttr: true,
				Redeemed:     true,
			},
			want: []indexer.Banner{indexer.BannerNotRevealed, indexer.BannerRedeemAttr},
		},
		{
			name: "externally redeemed",
			tok:  indexer.OwnedToken{TokenID: "3", Revealed: true, ExternallyRedeemed: true, Redeemed: true},
			want: []indexer.Banner{indexer.BannerExternallyRedeemed},
		},
	}

	all := []indexer.Banner{indexer.BannerExternallyRedeemed, indexer.BannerNotRevealed, indexer.BannerRedeemAttr}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tok.Balance = 1
			out := Render([]indexer.OwnedToken{tt.tok}, false, true, opts())
			last := -1
			for _, b := range all {
				idx := strings.Index(out, b.String())
				wanted := false
				for _, w := range tt.want {
					wanted = wanted || w == b
				}
				if !wanted {
					assert.Equal(t, -1, idx, b.String())
					continue
				}
				if assert.NotEqual(t, -1, idx, b.String()) {
					assert.Greater(t, idx, last)
					last = idx
				}
			}
		})
	}
}

func TestLabelSelectorOnlyWhenNeeded(t *testing.T) {
	toks := []indexer.OwnedToken{
		{TokenID: "1", Balance: 1, NeedsLabel: true, SelectedLabel: "Bitcoin Margaux"},
		{TokenID: "2", Balance: 1, HasLabel: true},
	}
	o := opts()
	o.Cursor = 0

	// read-only outside the wizard
	out := Render(toks, false, true, o)
	assert.Equal(t, 1, strings.Count(out, "Select Wine Label"))
	assert.Contains(t, out, "Bitcoin Margaux")
	assert.NotContains(t, out, "to choose")

	o.Selectable = true
	out = Render(toks, false, true, o)
	assert.Equal(t, 1, strings.Count(out, "Select Wine Label"))
	assert.Contains(t, out, "to choose")
}

func TestRenderPutsUnlabelledFirst(t *testing.T) {
	toks := []indexer.OwnedToken{
		{TokenID: "1", DisplayName: "Alpha", Balance: 1, HasLabel: true, Revealed: true},
		{TokenID: "2", DisplayName: "Bravo", Balance: 1, NeedsLabel: true, Revealed: true},
		{TokenID: "3", DisplayName: "Charlie", Balance: 1, HasLabel: true, Revealed: true},
	}
	out := Render(toks, false, true, opts())

	a, b, c := strings.Index(out, "Alpha"), strings.Index(out, "Bravo"), strings.Index(out, "Charlie")
	assert.NotEqual(t, -1, a)
	assert.Less(t, b, a)
	assert.Less(t, a, c)
	assert.Equal(t, "1", toks[0].TokenID)
}
