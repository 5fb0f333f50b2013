package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"
	"github.com/urfave/cli/v2"

	"github.com/bran/ismcts/internal/bidding"
	"github.com/bran/ismcts/internal/cards"
	"github.com/bran/ismcts/internal/config"
	"github.com/bran/ismcts/internal/deal"
	"github.com/bran/ismcts/internal/instrumentation"
	"github.com/bran/ismcts/internal/mcts"
	"github.com/bran/ismcts/internal/rules"
	"github.com/bran/ismcts/internal/state"
	"github.com/bran/ismcts/internal/ui/theme"
)

func watchCommand(log slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Animate the engine playing a full synthetic round for one seat",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "players", Value: 4},
			&cli.IntFlag{Name: "cards-per-player", Value: 8},
			&cli.Int64Flag{Name: "seed", Value: 1},
			&cli.DurationFlag{Name: "budget", Value: 300 * time.Millisecond},
			&cli.StringFlag{Name: "strategy", Value: "default"},
		},
		Action: func(c *cli.Context) error {
			log.SetLevel(slog.LevelWarn)
			m := newWatchModel(c, log)
			p := tea.NewProgram(m)
			_, err := p.Run()
			return err
		},
	}
}

type stepMsg struct{}

func stepAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return stepMsg{} })
}

// watchModel drives one synthetic round: the engine decides for a
// single observer seat; every other seat plays a trivial rule-based
// policy (lowest legal card). This is boundary/demo code — it never
// changes the search semantics living in internal/mcts.
type watchModel struct {
	game     state.GameState
	observer state.PlayerID
	rulesCfg rules.Config
	strat    config.Config

	rng      *rand.Rand
	sink     *instrumentation.SlogSink
	budget   time.Duration
	log      []string
	done     bool
	quitting bool
}

func newWatchModel(c *cli.Context, log slog.Logger) *watchModel {
	players := make([]state.PlayerID, c.Int("players"))
	for i := range players {
		players[i] = state.PlayerID(fmt.Sprintf("p%d", i+1))
	}
	dealCfg := deal.Config{
		GameID:         "ismctsctl-watch",
		PlayerIDs:      players,
		CardsPerPlayer: c.Int("cards-per-player"),
		Seed:           c.Int64("seed"),
	}
	g := deal.New(dealCfg)
	observer := players[0]
	suit, _, ok := bidding.ChooseTrump(g.PlayerStates[observer].Hand, dealCfg.CardsPerPlayer)
	if !ok {
		suit = cards.Spades
	}
	g.RoundState.TrumpSuit = &suit

	cfg := config.Default()
	if c.IsSet("strategy") {
		cfg.Strategy.Type = strings.ToUpper(c.String("strategy"))
	}

	return &watchModel{
		game:     g,
		observer: observer,
		rulesCfg: cfg.ToRulesConfig(),
		strat:    cfg,
		rng:      rand.New(rand.NewSource(c.Int64("seed") + 1)),
		sink:     instrumentation.NewSlogSink(log),
		budget:   c.Duration("budget"),
		log:      []string{fmt.Sprintf("trump is %s, observer is %s", suit, observer)},
	}
}

func (m *watchModel) Init() tea.Cmd {
	return stepAfter(200 * time.Millisecond)
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	case stepMsg:
		if m.quitting || m.done {
			return m, nil
		}
		m.advance()
		if m.roundOver() {
			m.done = true
			return m, nil
		}
		return m, stepAfter(250 * time.Millisecond)
	}
	return m, nil
}

// advance plays exactly one card: the engine's choice if it is the
// observer's turn, otherwise the trivial opponent policy.
func (m *watchModel) advance() {
	if m.game.RoundState == nil || m.game.RoundState.TrickInProgress == nil {
		return
	}
	player := rules.CurrentPlayer(m.game)
	if player == "" {
		return
	}

	var move cards.Card
	if player == m.observer {
		engine := mcts.NewEngine(m.game, m.observer, m.rulesCfg, m.strat.ToStrategyConfig(), m.rng, m.sink)
		chosen := engine.Search(m.budget)
		if chosen == nil {
			return
		}
		move = *chosen
		m.log = append(m.log, fmt.Sprintf("%s (engine) plays %s", player, move))
	} else {
		legal := rules.LegalMoves(m.game, m.rulesCfg)
		if len(legal) == 0 {
			return
		}
		move = lowestCard(legal)
		m.log = append(m.log, fmt.Sprintf("%s plays %s", player, move))
	}

	trickBefore := m.game.RoundState.TrickInProgress.TrickIndex
	if err := rules.PlayCard(&m.game, player, move.ID()); err != nil {
		m.log = append(m.log, fmt.Sprintf("error: %v", err))
		return
	}
	order := m.game.SeatOrder()
	if m.game.RoundState.TrickInProgress != nil && len(m.game.RoundState.TrickInProgress.Plays) == len(order) {
		_ = rules.CompleteTrick(&m.game)
		completed := m.game.RoundState.CompletedTricks[len(m.game.RoundState.CompletedTricks)-1]
		m.log = append(m.log, fmt.Sprintf("trick %d won by %s", trickBefore, completed.WinningPlayerID))
	}
}

// lowestCard returns the lowest-ranked card in the slice — the trivial
// discard policy opponents play while the engine decides for the
// observer seat.
func lowestCard(hand []cards.Card) cards.Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if c.Rank < best.Rank {
			best = c
		}
	}
	return best
}

func (m *watchModel) roundOver() bool {
	return m.game.RoundState == nil || m.game.RoundState.TrickInProgress == nil
}

func (m *watchModel) View() string {
	var b strings.Builder
	b.WriteString(theme.Current.Title.Render("ismctsctl watch"))
	b.WriteString("\n")

	ps := m.game.PlayerStates[m.observer]
	b.WriteString(fmt.Sprintf("observer %s tricks won: %d\n", m.observer, ps.TricksWon))
	b.WriteString(fmt.Sprintf("iterations last decision: %d  determinizations: %d  degraded: %d\n\n",
		m.sink.LastIterations(), m.sink.DeterminizationCount, m.sink.DegradedCount))

	start := 0
	if len(m.log) > 12 {
		start = len(m.log) - 12
	}
	for _, line := range m.log[start:] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString(theme.Current.Success.Render("\nround complete. press q to quit.\n"))
	} else {
		b.WriteString(theme.Current.Help.Render("\npress q to quit\n"))
	}
	return b.String()
}
