package main

import (
	"fmt"
	"net/http"
	"os"

	"cellar-transfer-tui/config"
	"cellar-transfer-tui/indexer"
	"cellar-transfer-tui/thumbnail"
	"cellar-transfer-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
)

// -------------------- MAIN --------------------

func main() {
	settings, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	m := newModel(settings, newProvider(settings.ProviderURL), newFetcher(settings), thumbnail.NewLoader(http.DefaultClient, "", 0, 0))
	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	m.shutdown()
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

// newProvider returns nil when no wallet endpoint is configured
func newProvider(url string) wallet.Provider {
	if rp := wallet.NewRPCProvider(url); rp != nil {
		return rp
	}
	return nil
}

func newFetcher(s config.Settings) indexer.Fetcher {
	base := s.IndexerURL
	if base == "" {
		base = indexer.AlchemyBaseURL(s.AlchemyNetwork, s.AlchemyAPIKey)
	}
	client := indexer.NewClient(http.DefaultClient, base, s.ContractAddress, s.RedeemedTokenIDs)
	return indexer.NewCachedFetcher(client, s.ContractAddress.Hex(), s.CacheTTL)
}
