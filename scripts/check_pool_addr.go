package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"panda-api/pkg/confkit"
	"panda-api/pkg/metrics"
)

// Checks that a DEX pool address has the format the metrics backend
// expects and, when the backend is configured, probes the divine-dip
// endpoint with it.
func main() {
	if len(os.Args) != 3 {
		fmt.Println("usage: check_pool_addr <chain> <pool_address>")
		os.Exit(1)
	}
	confkit.LoadDotenvOnce()

	chain := strings.ToLower(strings.TrimSpace(os.Args[1]))
	addr := strings.TrimSpace(os.Args[2])

	fmt.Printf("Chain: %s\n", chain)
	fmt.Printf("Pool:  %s\n\n", addr)

	switch {
	case chain == "solana":
		fmt.Println("Format: base58 expected, solana pools skip the hex check")
	case common.IsHexAddress(addr):
		fmt.Printf("Format: OK, canonical form %s\n", common.HexToAddress(addr).Hex())
	default:
		fmt.Println("Format: INVALID, expected a 0x-prefixed 20-byte hex address")
		os.Exit(1)
	}

	client, err := metrics.NewClient()
	if err != nil {
		fmt.Printf("\nBackend probe skipped: %v\n", err)
		return
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	end := time.Now().Unix()
	resp, err := client.FetchDivineDip(ctx, metrics.DivineDipQuery{
		ExchangeType: metrics.ExchangeTypeDEX,
		Chain:        chain,
		PoolAddress:  addr,
		Timeframe:    "1H",
		StartEpoch:   end - 24*60*60,
		EndEpoch:     end,
	})
	if err != nil {
		fmt.Printf("\nBackend probe failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nBackend probe OK: %d points in the last 24h, %d dip signals\n",
		resp.Count, resp.Stats.DivineDipSignals)
}
