package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyActions(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Event
	}{
		{
			name: "hand start",
			line: `-- starting hand #12 (id: abc123) (No Limit Texas Hold'em) --`,
			want: Event{Kind: KindHandStart},
		},
		{
			name: "flop marker modern",
			line: `*** FLOP *** [Kd 7c 2h]`,
			want: Event{Kind: KindStreet, Street: StreetFlop},
		},
		{
			name: "flop marker legacy",
			line: `Flop: [Kd 7c 2h]`,
			want: Event{Kind: KindStreet, Street: StreetFlop},
		},
		{
			name: "turn marker modern",
			line: `*** TURN *** [Kd 7c 2h] [9s]`,
			want: Event{Kind: KindStreet, Street: StreetTurn},
		},
		{
			name: "turn marker legacy",
			line: `Turn: 9s`,
			want: Event{Kind: KindStreet, Street: StreetTurn},
		},
		{
			name: "river marker modern",
			line: `*** RIVER *** [Kd 7c 2h 9s] [As]`,
			want: Event{Kind: KindStreet, Street: StreetRiver},
		},
		{
			name: "river marker legacy",
			line: `River: As`,
			want: Event{Kind: KindStreet, Street: StreetRiver},
		},
		{
			name: "small blind",
			line: `"loki @ 7Nv8hjyL1f" posts a small blind of 0.10`,
			want: Event{Kind: KindSmallBlind, Actor: "loki", Amount: 0.10, HasAmount: true},
		},
		{
			name: "big blind",
			line: `"maya @ Zq3W9k" posts a big blind of 0.20`,
			want: Event{Kind: KindBigBlind, Actor: "maya", Amount: 0.20, HasAmount: true},
		},
		{
			name: "small blind with digits in player name",
			line: `"loki2 @ 7Nv8hjyL1f" posts a small blind of 0.10`,
			want: Event{Kind: KindSmallBlind, Actor: "loki2", Amount: 0.10, HasAmount: true},
		},
		{
			name: "big blind with digits in player name",
			line: `"99problems @ Zq3W9k" posts a big blind of 0.20`,
			want: Event{Kind: KindBigBlind, Actor: "99problems", Amount: 0.20, HasAmount: true},
		},
		{
			name: "fold",
			line: `"loki @ 7Nv8hjyL1f" folds`,
			want: Event{Kind: KindFold, Actor: "loki"},
		},
		{
			name: "call",
			line: `"loki @ 7Nv8hjyL1f" calls 0.30`,
			want: Event{Kind: KindCall, Actor: "loki", Amount: 0.30, HasAmount: true},
		},
		{
			name: "check",
			line: `"maya @ Zq3W9k" checks`,
			want: Event{Kind: KindCheck, Actor: "maya"},
		},
		{
			name: "bet",
			line: `"maya @ Zq3W9k" bets 0.40`,
			want: Event{Kind: KindBet, Actor: "maya", Amount: 0.40, HasAmount: true},
		},
		{
			name: "raise to absolute amount",
			line: `"loki @ 7Nv8hjyL1f" raises to 1.20`,
			want: Event{Kind: KindRaiseTo, Actor: "loki", Amount: 1.20, HasAmount: true},
		},
		{
			name: "integer amount",
			line: `"loki @ 7Nv8hjyL1f" calls 5`,
			want: Event{Kind: KindCall, Actor: "loki", Amount: 5, HasAmount: true},
		},
		{
			name: "show",
			line: `"maya @ Zq3W9k" shows a Kd Th.`,
			want: Event{Kind: KindShow, Actor: "maya"},
		},
		{
			name: "collected from pot",
			line: `"maya @ Zq3W9k" collected 1.45 from pot with a pair of Kings`,
			want: Event{Kind: KindCollected, Actor: "maya", Amount: 1.45, HasAmount: true},
		},
		{
			name: "uncalled bet return strips id",
			line: `Uncalled bet of 0.90 returned to "loki @ 7Nv8hjyL1f"`,
			want: Event{Kind: KindUncalledReturn, Actor: "loki", Amount: 0.90, HasAmount: true},
		},
		{
			name: "malformed amount keeps kind without numeric update",
			line: `"loki @ 7Nv8hjyL1f" raises to garbage`,
			want: Event{Kind: KindRaiseTo, Actor: "loki"},
		},
		{
			name: "join line is other",
			line: `The player "newguy @ Ab12Cd" joined the game with a stack of 20.00.`,
			want: Event{Kind: KindOther},
		},
		{
			name: "admin line is other",
			line: `The admin approved the player "newguy @ Ab12Cd" participation with a stack of 20.00.`,
			want: Event{Kind: KindOther},
		},
		{
			name: "blank line is other",
			line: ``,
			want: Event{Kind: KindOther},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestClassifyNeverFails(t *testing.T) {
	// Garbage in, Other out.
	for _, line := range []string{
		"completely unrelated text",
		`"dangling quote`,
		"*** SHOWDOWN ***",
		`"someone @ id" does something unknown`,
	} {
		ev := Classify(line)
		require.Equal(t, KindOther, ev.Kind, "line %q", line)
	}
}

func TestPlayerNameDiscardsSeatID(t *testing.T) {
	require.Equal(t, "loki", PlayerName(`"loki @ 7Nv8hjyL1f" folds`))
	require.Equal(t, "", PlayerName("Flop: [Kd 7c 2h]"))
}
