package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/padel-ratings/internal/club"
	"github.com/mauv0809/padel-ratings/internal/config"
	"github.com/mauv0809/padel-ratings/internal/database"
	"github.com/mauv0809/padel-ratings/internal/match"
	"github.com/spf13/cobra"
)

var roster = []string{
	"Seeder Ana", "Seeder Bea", "Seeder Cris", "Seeder Dani",
	"Seeder Eva", "Seeder Fran", "Seeder Gabi", "Seeder Hugo",
}

var (
	numMatches int
	batchSize  int
	days       int
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the configured database with synthetic matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVarP(&numMatches, "matches", "n", 1000, "Number of matches to insert")
	rootCmd.Flags().IntVar(&batchSize, "batch", 100, "Matches inserted per transaction")
	rootCmd.Flags().IntVar(&days, "days", 365, "Spread match dates over this many past days")
	rootCmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Random seed")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...")
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if batchSize <= 0 || days <= 0 {
		return fmt.Errorf("batch and days must be positive")
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()
	store := club.New(db)

	rng := rand.New(rand.NewPCG(seed, seed>>1))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize, "seed", seed)
	startTime := time.Now()

	batch := make([]match.Record, 0, batchSize)
	for i := 0; i < numMatches; i++ {
		batch = append(batch, randomMatch(rng, today.AddDate(0, 0, -rng.IntN(days))))

		if len(batch) == batchSize || i+1 == numMatches {
			if _, err := store.AddMatches(ctx, batch); err != nil {
				return fmt.Errorf("failed to insert batch: %w", err)
			}
			batch = batch[:0]
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	log.Info("Successfully inserted all dummy matches.", "duration", time.Since(startTime))
	return nil
}

// randomMatch draws four distinct players and a plausible best-of-three score.
func randomMatch(rng *rand.Rand, date time.Time) match.Record {
	p := rng.Perm(len(roster))
	winner := match.Side(1 + rng.IntN(2))

	var sets []match.SetScore
	won, lost := 0, 0
	for won < 2 {
		w, l := randomSet(rng)
		if won+lost < 2 && lost == 0 && rng.IntN(3) == 0 {
			lost++
			sets = append(sets, orient(l, w, winner))
			continue
		}
		won++
		sets = append(sets, orient(w, l, winner))
	}

	return match.Record{
		ID:     uuid.NewString(),
		Source: match.SourceManual,
		Date:   date,
		Team1:  match.Team{A: roster[p[0]], B: roster[p[1]]},
		Team2:  match.Team{A: roster[p[2]], B: roster[p[3]]},
		Sets:   sets,
		Winner: match.DeriveWinner(sets),
	}
}

// randomSet returns the games of the set winner and loser.
func randomSet(rng *rand.Rand) (int, int) {
	switch l := rng.IntN(8); {
	case l <= 4:
		return 6, l
	case l == 5:
		return 7, 5
	default:
		return 7, 6
	}
}

// orient maps a set won by the match winner (w >= l) or lost by it (w < l)
// onto team 1 and team 2 games.
func orient(winnerGames, loserGames int, winner match.Side) match.SetScore {
	if winner == match.Team1 {
		return match.SetScore{Team1: winnerGames, Team2: loserGames}
	}
	return match.SetScore{Team1: loserGames, Team2: winnerGames}
}
