package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:    "rules",
		Aliases: []string{"r"},
		Usage:   "Print the follow-suit/trump/winner rules the engine enforces",
		Action: func(c *cli.Context) error {
			fmt.Print(`
TRICK-TAKING RULES (generalized)
=================================

THE DECK
--------
52 cards: 2 through Ace of each suit (Clubs, Diamonds, Hearts, Spades).
A round deals a fixed number of cards to each player; that count is
also the number of tricks played in the round.

TRUMP
-----
One suit may be designated trump for the round. Any card of the trump
suit beats any card of a non-trump suit, regardless of rank.

FOLLOWING SUIT
--------------
Whoever leads a trick sets the led suit for that trick. Every other
player must play a card of the led suit if they hold one. A player
holding none of the led suit may play any card, including trump.

By default a player may lead a trump card at any point. Enabling the
"cannot lead trump until broken" variant (rules.can_lead_trump: false
in the CLI config) restricts leading trump until someone has played it
off-suit earlier in the round — unless the leader's hand is pure trump,
in which case the restriction is waived.

WINNING A TRICK
---------------
Scan the plays in the order they were made:
  1. If any trump was played, the highest-ranked trump wins.
  2. Otherwise, the highest-ranked card of the led suit wins.
The winner leads the next trick; the round ends once every player has
played their full hand.

WHAT THE ENGINE OPTIMIZES
--------------------------
The search explores many random completions of the round (sampling the
cards it cannot see) and scores each one with the configured strategy:
  default         - fraction of tricks won
  aggressive      - rewards winning tricks early in the round
  slough_points   - rewards/penalizes point cards per a configurable table

Use 'ismctsctl decide --help' to run a decision, or 'ismctsctl watch' to
see the engine play out a full synthetic round.
`)
			return nil
		},
	}
}
