package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/decred/slog"
	"github.com/urfave/cli/v2"

	"github.com/bran/ismcts/internal/bidding"
	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/config"
	"github.com/bran/ismcts/internal/deal"
	"github.com/bran/ismcts/internal/instrumentation"
	"github.com/bran/ismcts/internal/mcts"
	"github.com/bran/ismcts/internal/snapshot"
	"github.com/bran/ismcts/internal/state"
)

func decideCommand(log slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "decide",
		Usage: "Run one decision through the engine and print the chosen card",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "state", Usage: "path to a GameState snapshot YAML file"},
			&cli.StringFlag{Name: "observer", Usage: "observer player id (overrides the snapshot's observer_id)"},
			&cli.StringFlag{Name: "config", Usage: "path to an engine config YAML file"},
			&cli.DurationFlag{Name: "budget", Value: 500 * time.Millisecond, Usage: "search time budget"},
			&cli.StringFlag{Name: "strategy", Value: "default", Usage: "default|aggressive|slough_points"},
			&cli.BoolFlag{Name: "deal", Usage: "synthesize a fresh deal instead of loading --state"},
			&cli.IntFlag{Name: "players", Value: 4, Usage: "player count when --deal is used"},
			&cli.IntFlag{Name: "cards-per-player", Value: 8, Usage: "cards per player when --deal is used"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "RNG seed"},
			&cli.BoolFlag{Name: "verbose", Usage: "log request/determinization instrumentation"},
		},
		Action: runDecide(log),
	}
}

func runDecide(log slog.Logger) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg := config.Default()
		if path := c.String("config"); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if c.IsSet("strategy") {
			cfg.Strategy.Type = strings.ToUpper(c.String("strategy"))
		}

		// Flags win when the caller set them explicitly; otherwise fall
		// back to whatever --config loaded (config.Default's own
		// defaults if no file was given).
		seed := c.Int64("seed")
		if !c.IsSet("seed") && cfg.Seed != 0 {
			seed = cfg.Seed
		}
		budget := c.Duration("budget")
		if !c.IsSet("budget") && cfg.TimeBudgetMs != 0 {
			budget = time.Duration(cfg.TimeBudgetMs) * time.Millisecond
		}

		var root state.GameState
		var observer state.PlayerID

		switch {
		case c.Bool("deal"):
			players := make([]state.PlayerID, c.Int("players"))
			for i := range players {
				players[i] = state.PlayerID(fmt.Sprintf("p%d", i+1))
			}
			dealCfg := deal.Config{
				GameID:         "ismctsctl-deal",
				PlayerIDs:      players,
				CardsPerPlayer: c.Int("cards-per-player"),
				Seed:           seed,
			}
			root = deal.New(dealCfg)
			observer = players[0]
			suit, _, ok := bidding.ChooseTrump(root.PlayerStates[observer].Hand, dealCfg.CardsPerPlayer)
			if !ok {
				suit = cards.Spades
			}
			root.RoundState.TrumpSuit = &suit
		case c.String("state") != "":
			doc, err := snapshot.Load(c.String("state"))
			if err != nil {
				return err
			}
			gs, err := doc.ToGameState()
			if err != nil {
				return err
			}
			root = gs
			observer = state.PlayerID(doc.ObserverID)
		default:
			return cli.Exit("one of --state or --deal is required", 1)
		}

		if o := c.String("observer"); o != "" {
			observer = state.PlayerID(o)
		}

		rng := rand.New(rand.NewSource(seed))
		sink := instrumentation.NewSlogSink(log)
		if c.Bool("verbose") {
			log.SetLevel(slog.LevelDebug)
		} else {
			log.SetLevel(slog.LevelWarn)
		}

		sink.RequestStart("decide")
		start := time.Now()
		engine := mcts.NewEngine(root, observer, cfg.ToRulesConfig(), cfg.ToStrategyConfig(), rng, sink)
		move := engine.Search(budget)
		elapsed := time.Since(start)
		sink.RequestEnd("decide", elapsed, sink.LastIterations())

		if move == nil {
			fmt.Println("no decision (no legal move, or zero iterations completed)")
			return nil
		}
		fmt.Printf("chosen card: %s (%s)\n", move.ID(), move.String())
		fmt.Printf("elapsed: %s, iterations: %d, determinizations: %d, degraded: %d\n",
			elapsed, sink.LastIterations(), sink.DeterminizationCount, sink.DegradedCount)
		return nil
	}
}
