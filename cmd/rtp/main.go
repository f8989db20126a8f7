package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	"cardRevealServer/config"
	"cardRevealServer/crypto"
	"cardRevealServer/game"
)

func main() {
	rounds := flag.Int("rounds", config.SimulationRounds, "rounds to simulate")
	bet := flag.Float64("bet", config.SimulationBet, "bet per round")
	payTablePath := flag.String("paytable", os.Getenv("PAYTABLE_PATH"), "YAML pay table (default: built-in)")
	seed := flag.String("seed", "", "RNG seed (default: random)")
	hash := flag.String("hash", "", "session seed hash to check -seed against")
	flag.Parse()

	if err := checkSeed(*seed, *hash); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	payTable := config.DefaultPayTable()
	if *payTablePath != "" {
		var err error
		payTable, err = config.LoadPayTable(*payTablePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
	}

	if *seed == "" {
		s, _, err := crypto.GenerateSeed()
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
			os.Exit(1)
		}
		*seed = s
	}

	table, err := payTable.Build(game.NewSeededRNG(*seed).Float64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Pay table:")
	for i, row := range table.Rows() {
		fmt.Printf("  %-24s p=%.4f\n", row, table.Probability(i))
	}
	fmt.Println()
	fmt.Printf("Expected multiplier per card: %.4f\n", table.ExpectedMultiplier())
	fmt.Printf("Theoretical RTP:              %.4f\n", game.TheoreticalRTP(table))
	fmt.Printf("Zero-round probability:       %.4f\n", game.ZeroRoundProbability(table))
	fmt.Println()

	fmt.Printf("Simulating %d rounds at $%.2f (seed %s)...\n\n", *rounds, *bet, *seed)
	report := game.Simulate(table, *bet, *rounds)

	fmt.Printf("Total bet:    $%s\n", report.TotalBet.StringFixed(2))
	fmt.Printf("Total payout: $%s\n", report.TotalPayout.StringFixed(2))
	fmt.Printf("RTP:          %.4f\n", report.RTP)
	fmt.Printf("Zero rounds:  %d (%.2f%%)\n", report.ZeroRounds, pct(report.ZeroRounds, report.Rounds))
	fmt.Printf("Wins:         %d (%.2f%%)\n", report.WinningRounds, pct(report.WinningRounds, report.Rounds))
	fmt.Printf("Best round:   %sx\n\n", report.MaxMultiplier.String())

	labels := make([]string, 0, len(report.Draws))
	for label := range report.Draws {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	draws := report.Rounds * game.CardCount
	fmt.Println("Card draws:")
	for _, label := range labels {
		fmt.Printf("  %-6s %9d (%.2f%%)\n", label, report.Draws[label], pct(report.Draws[label], draws))
	}

	fmt.Println("\n✅ Simulation complete")
}

// checkSeed confirms a replay seed matches the hash a server logged for its
// session. An empty hash skips the check.
func checkSeed(seed, hash string) error {
	if hash == "" {
		return nil
	}
	if seed == "" {
		return errors.New("-hash needs -seed")
	}
	if !crypto.VerifySeed(seed, hash) {
		return fmt.Errorf("seed does not match hash %s", hash)
	}
	fmt.Println("✅ Seed matches session hash")
	return nil
}

func pct(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) * 100 / float64(of)
}
