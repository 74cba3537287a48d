package main

import (
	"context"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/club-ladder/internal/club"
	"github.com/mauv0809/club-ladder/internal/database"
	"github.com/mauv0809/club-ladder/internal/ranking"
	"github.com/spf13/cobra"
)

var (
	ladderFile string
	fakeGroups int
	matches    int
	seed       uint64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the ladder database with groups, players and matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVar(&ladderFile, "file", "", "YAML file describing groups and players")
	rootCmd.Flags().IntVar(&fakeGroups, "fake", 0, "Generate this many full groups instead of reading a file")
	rootCmd.Flags().IntVar(&matches, "matches", 0, "Random finished matches to record per group")
	rootCmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for generated data, 0 picks a random one")
	rootCmd.MarkFlagsMutuallyExclusive("file", "fake")
	rootCmd.MarkFlagsOneRequired("file", "fake")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Seeding failed", "error", err)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		return fmt.Errorf("required environment variable DB_NAME is not set")
	}

	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer teardown()

	faker := gofakeit.New(seed)
	var ladder LadderFile
	if ladderFile != "" {
		f, err := os.Open(ladderFile)
		if err != nil {
			return fmt.Errorf("failed to open ladder file: %w", err)
		}
		defer f.Close()
		if ladder, err = parseLadder(f); err != nil {
			return err
		}
	} else {
		ladder = fakeLadder(faker, fakeGroups)
	}

	store := club.New(db)
	engine := ranking.New(store)
	for _, gs := range ladder.Groups {
		group, err := store.AddGroup(ctx, gs.Name, gs.Level)
		if err != nil {
			return fmt.Errorf("failed to add group %s: %w", gs.Name, err)
		}
		var members []ranking.Player
		for _, name := range gs.Players {
			p, err := store.AddPlayer(ctx, name, group.ID)
			if err != nil {
				return fmt.Errorf("failed to add player %s: %w", name, err)
			}
			members = append(members, *p)
		}
		if len(members) != ranking.GroupSize {
			log.Warn("Group is not full, transitions will skip it", "group", group.Name, "members", len(members))
		}

		for range matches {
			m, ok := fakeMatch(faker, *group, members)
			if !ok {
				break
			}
			if _, err := store.RecordMatch(ctx, m); err != nil {
				return fmt.Errorf("failed to record match in %s: %w", group.Name, err)
			}
		}
		if matches > 0 {
			if _, err := engine.BuildGroupRanking(ctx, *group, false); err != nil {
				return fmt.Errorf("failed to score group %s: %w", group.Name, err)
			}
		}
		log.Info("Seeded group", "group", group.Name, "level", group.Level, "players", len(members))
	}

	log.Info("Seeding complete", "groups", len(ladder.Groups))
	return nil
}
