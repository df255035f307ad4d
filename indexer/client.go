package indexer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/xerrors"
)

// PageSize is the most tokens returned by one fetch; later pages are not requested
const PageSize = 100

// DefaultTimeout bounds a single fetch
const DefaultTimeout = 15 * time.Second

// ErrFetchFailed covers every failure of the indexing API
var ErrFetchFailed = errors.New("failed to fetch NFTs")

// Fetcher retrieves the tokens an owner holds in the configured collection
type Fetcher interface {
	FetchOwnedTokens(ctx context.Context, owner string) ([]OwnedToken, error)
}

// Client is an Alchemy NFT API v3 getNFTsForOwner client
type Client struct {
	httpClient *http.Client
	baseURL    string
	contract   common.Address
	redeemed   map[string]bool
	timeout    time.Duration
}

// ownedNFTsResp is the getNFTsForOwner response body
type ownedNFTsResp struct {
	OwnedNFTs  []RawNFT `json:"ownedNfts"`
	TotalCount int      `json:"totalCount"`
	PageKey    string   `json:"pageKey"`
}

// AlchemyBaseURL returns the NFT API root for a network and key
func AlchemyBaseURL(network, apiKey string) string {
	return fmt.Sprintf("https://%s.g.alchemy.com/nft/v3/%s", network, apiKey)
}

// NewClient creates a client for contract. redeemedIDs marks tokens as redeemed
// regardless of their metadata.
func NewClient(httpClient *http.Client, baseURL string, contract common.Address, redeemedIDs []string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	redeemed := make(map[string]bool, len(redeemedIDs))
	for _, id := range redeemedIDs {
		if id = strings.TrimSpace(id); id != "" {
			redeemed[id] = true
		}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		contract:   contract,
		redeemed:   redeemed,
		timeout:    DefaultTimeout,
	}
}

// Contract returns the collection the client filters on
func (c *Client) Contract() common.Address { return c.contract }

func (c *Client) requestURL(owner string) string {
	q := url.Values{}
	q.Set("owner", owner)
	q.Add("contractAddresses[]", c.contract.Hex())
	q.Set("withMetadata", "true")
	q.Set("orderBy", "transferTime")
	q.Set("pageSize", fmt.Sprint(PageSize))
	return c.baseURL + "/getNFTsForOwner?" + q.Encode()
}

// FetchOwnedTokens issues one request. Any failure is reported as ErrFetchFailed.
func (c *Client) FetchOwnedTokens(ctx context.Context, owner string) ([]OwnedToken, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, xerrors.Errorf("empty owner: %w", ErrFetchFailed)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(owner), nil)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrFetchFailed)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, xerrors.Errorf("%v: %w", err, ErrFetchFailed)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, xerrors.Errorf("resp.StatusCode %d != 200: %w", resp.StatusCode, ErrFetchFailed)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, xerrors.Errorf("read body: %v: %w", err, ErrFetchFailed)
	}

	var out ownedNFTsResp
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, xerrors.Errorf("decode: %v: %w", err, ErrFetchFailed)
	}
	if out.OwnedNFTs == nil {
		return nil, xerrors.Errorf("response has no ownedNfts: %w", ErrFetchFailed)
	}

	tokens := make([]OwnedToken, 0, len(out.OwnedNFTs))
	for _, raw := range out.OwnedNFTs {
		tokens = append(tokens, NewOwnedToken(raw, c.redeemed))
	}
	return tokens, nil
}
