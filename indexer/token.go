package indexer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Attribute trait names inspected on token metadata
const (
	TraitLabel   = "label"
	TraitReveal  = "reveal"
	TraitRedeem  = "redeem"
	TraitVintage = "Vintage"
)

// WineLabels is the fixed set of labels a holder may pick for an unlabelled bottle
var WineLabels = []string{
	"Bitcoin St Emilion",
	"Bitcoin Margaux",
	"Bitcoin Pessac Leognan",
}

// Banner is a status annotation shown under a token
type Banner int

const (
	BannerExternallyRedeemed Banner = iota
	BannerNotRevealed
	BannerRedeemAttr
)

func (b Banner) String() string {
	switch b {
	case BannerExternallyRedeemed:
		return "This NFT has already been redeemed to Intercellar"
	case BannerNotRevealed:
		return "This NFT has not been revealed yet and hence won't be transferred to Intercellar"
	case BannerRedeemAttr:
		return "This NFT is already redeemed and hence won't be transferred to Intercellar"
	default:
		return ""
	}
}

// OwnedToken is one token of the collection held by the owner, with its
// status flags computed once at construction.
type OwnedToken struct {
	TokenID         string
	ContractAddress string
	DisplayName     string
	ImageURL        string
	Attributes      map[string]string
	Balance         int

	Revealed           bool
	RedeemedAttr       bool
	ExternallyRedeemed bool
	Redeemed           bool
	HasLabel           bool
	NeedsLabel         bool

	SelectedLabel string
}

// Name returns the display name or "Token #<id>"
func (t OwnedToken) Name() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return "Token #" + t.TokenID
}

// Vintage returns the Vintage attribute or N/A
func (t OwnedToken) Vintage() string {
	if v := t.Attributes[TraitVintage]; v != "" {
		return v
	}
	return "N/A"
}

// Banners lists every status banner whose attribute check holds, in display order
func (t OwnedToken) Banners() []Banner {
	var out []Banner
	if t.ExternallyRedeemed {
		out = append(out, BannerExternallyRedeemed)
	}
	if v, ok := t.Attributes[TraitReveal]; ok && v == "false" {
		out = append(out, BannerNotRevealed)
	}
	if t.RedeemedAttr {
		out = append(out, BannerRedeemAttr)
	}
	return out
}

// IsWineLabel reports whether label is one of WineLabels
func IsWineLabel(label string) bool {
	for _, l := range WineLabels {
		if l == label {
			return true
		}
	}
	return false
}

// RawNFT is one entry of the getNFTsForOwner response
type RawNFT struct {
	Contract struct {
		Address string `json:"address"`
		Name    string `json:"name"`
	} `json:"contract"`
	TokenID string `json:"tokenId"`
	Name    string `json:"name"`
	Image   struct {
		CachedURL    string `json:"cachedUrl"`
		ThumbnailURL string `json:"thumbnailUrl"`
		OriginalURL  string `json:"originalUrl"`
	} `json:"image"`
	Raw struct {
		Metadata struct {
			Attributes json.RawMessage `json:"attributes"`
		} `json:"metadata"`
	} `json:"raw"`
	Balance quantity `json:"balance"`
}

type rawAttribute struct {
	TraitType string      `json:"trait_type"`
	Value     interface{} `json:"value"`
}

// NewOwnedToken builds a token from an API entry. redeemed holds token IDs
// flagged as redeemed outside the metadata.
func NewOwnedToken(raw RawNFT, redeemed map[string]bool) OwnedToken {
	t := OwnedToken{
		TokenID:         raw.TokenID,
		ContractAddress: raw.Contract.Address,
		DisplayName:     strings.TrimSpace(raw.Name),
		ImageURL:        raw.Image.CachedURL,
		Attributes:      parseAttributes(raw.Raw.Metadata.Attributes),
		Balance:         int(raw.Balance),
	}
	if t.Balance < 1 {
		t.Balance = 1
	}
	t.ExternallyRedeemed = redeemed[t.TokenID]
	_, t.HasLabel = t.Attributes[TraitLabel]
	t.Revealed = t.Attributes[TraitReveal] != "false"
	t.RedeemedAttr = t.Attributes[TraitRedeem] == "true"
	t.Redeemed = t.RedeemedAttr || t.ExternallyRedeemed
	t.NeedsLabel = !t.HasLabel && t.Revealed && !t.Redeemed
	return t
}

// parseAttributes keeps the first value of each trait. Metadata that is not
// an attribute list yields no attributes.
func parseAttributes(data json.RawMessage) map[string]string {
	attrs := map[string]string{}
	if len(data) == 0 {
		return attrs
	}
	var list []rawAttribute
	if err := json.Unmarshal(data, &list); err != nil {
		return attrs
	}
	for _, a := range list {
		if a.TraitType == "" {
			continue
		}
		if _, seen := attrs[a.TraitType]; seen {
			continue
		}
		if a.Value == nil {
			attrs[a.TraitType] = ""
			continue
		}
		attrs[a.TraitType] = fmt.Sprint(a.Value)
	}
	return attrs
}

// quantity accepts a balance sent either as a JSON number or a string
type quantity int

func (q *quantity) UnmarshalJSON(data []byte) error {
	n, err := strconv.Atoi(strings.Trim(string(data), `"`))
	if err != nil || n < 1 {
		n = 1
	}
	*q = quantity(n)
	return nil
}

// SortForDisplay returns tokens needing a label first. Relative order within
// each group is preserved.
func SortForDisplay(tokens []OwnedToken) []OwnedToken {
	out := make([]OwnedToken, 0, len(tokens))
	for _, t := range tokens {
		if t.NeedsLabel {
			out = append(out, t)
		}
	}
	for _, t := range tokens {
		if !t.NeedsLabel {
			out = append(out, t)
		}
	}
	return out
}
