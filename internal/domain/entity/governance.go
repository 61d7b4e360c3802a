package entity

import "math/big"

// Conviction is the lock multiplier chosen with a vote.
type Conviction string

const (
	ConvictionNone     Conviction = "None"
	ConvictionLocked1x Conviction = "Locked1x"
	ConvictionLocked2x Conviction = "Locked2x"
	ConvictionLocked3x Conviction = "Locked3x"
	ConvictionLocked4x Conviction = "Locked4x"
	ConvictionLocked5x Conviction = "Locked5x"
	ConvictionLocked6x Conviction = "Locked6x"
)

// Convictions is ordered by the on-chain conviction index.
var Convictions = []Conviction{
	ConvictionNone,
	ConvictionLocked1x,
	ConvictionLocked2x,
	ConvictionLocked3x,
	ConvictionLocked4x,
	ConvictionLocked5x,
	ConvictionLocked6x,
}

var convictionLockPeriods = map[Conviction]uint32{
	ConvictionNone:     0,
	ConvictionLocked1x: 1,
	ConvictionLocked2x: 2,
	ConvictionLocked3x: 4,
	ConvictionLocked4x: 8,
	ConvictionLocked5x: 16,
	ConvictionLocked6x: 32,
}

// LockPeriods returns how many vote locking periods the conviction keeps funds locked after a win.
func (c Conviction) LockPeriods() uint32 {
	return convictionLockPeriods[c]
}

// ClassLock is the amount locked by conviction voting on one governance track.
type ClassLock struct {
	Class  uint16   `json:"class"`
	Amount *big.Int `json:"amount"`
}

// AccountClassLocks lists the non-zero class locks of one account.
type AccountClassLocks struct {
	Account string      `json:"account"`
	Classes []ClassLock `json:"classes"`
}

// Vote directions.
const (
	VoteAye     = "aye"
	VoteNay     = "nay"
	VoteSplit   = "split"
	VoteAbstain = "abstain"
)

// ReferendumOutcome is the state of a referendum a vote was cast on.
type ReferendumOutcome struct {
	Status string  `json:"status"` // Ongoing, Approved, Rejected, Cancelled, TimedOut, Killed
	Ended  *uint32 `json:"ended,omitempty"`
	Side   string  `json:"side,omitempty"` // winning side once decided
}

// VoteLock is a vote or delegation that keeps a balance locked.
type VoteLock struct {
	Account      string             `json:"account"`
	Class        uint16             `json:"class"`
	ReferendumID *uint32            `json:"referendumId,omitempty"` // nil for delegations
	VoteType     string             `json:"voteType"`               // Standard, Split, SplitAbstain, Delegating
	Direction    string             `json:"direction,omitempty"`
	Conviction   Conviction         `json:"conviction"`
	Balance      *big.Int           `json:"balance"`
	LockPeriods  uint32             `json:"lockPeriods"`
	Target       string             `json:"target,omitempty"` // delegation target
	Outcome      *ReferendumOutcome `json:"outcome,omitempty"`
}
