// Package parser turns raw PokerNow log lines into typed action events and
// groups them into hands.
package parser

// Kind identifies what a single log line represents.
type Kind int

const (
	// KindOther is any line the classifier does not recognize. Other lines
	// carry no information for analysis and are skipped.
	KindOther Kind = iota
	KindHandStart
	KindStreet
	KindSmallBlind
	KindBigBlind
	KindFold
	KindCheck
	KindCall
	KindBet
	KindRaiseTo
	KindShow
	KindCollected
	KindUncalledReturn
)

func (k Kind) String() string {
	switch k {
	case KindHandStart:
		return "hand_start"
	case KindStreet:
		return "street"
	case KindSmallBlind:
		return "small_blind"
	case KindBigBlind:
		return "big_blind"
	case KindFold:
		return "fold"
	case KindCheck:
		return "check"
	case KindCall:
		return "call"
	case KindBet:
		return "bet"
	case KindRaiseTo:
		return "raise_to"
	case KindShow:
		return "show"
	case KindCollected:
		return "collected"
	case KindUncalledReturn:
		return "uncalled_return"
	default:
		return "other"
	}
}

// Street is a betting round. Streets progress strictly forward within a hand.
type Street int

const (
	StreetPreflop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver

	// NumStreets sizes per-street arrays indexed by Street.
	NumStreets = 4
)

func (s Street) String() string {
	switch s {
	case StreetPreflop:
		return "preflop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	default:
		return "unknown"
	}
}

// Event is the classified form of one log line.
//
// Amount semantics depend on Kind: blinds, calls, bets and pot collections
// carry the incremental amount; KindRaiseTo carries the absolute raise
// target; KindUncalledReturn carries the returned amount. HasAmount is false
// when the line matched but its amount text did not parse, in which case the
// event is still processed for role and flag purposes.
type Event struct {
	Kind      Kind
	Actor     string // display name with the "@ id" suffix stripped; "" when none
	Amount    float64
	HasAmount bool
	Street    Street // only meaningful for KindStreet
}
