package pallet

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"

	"hub_balance/internal/domain/entity"
	huberrors "hub_balance/internal/pkg/errors"
	"hub_balance/internal/pkg/utils"
)

const (
	voteAyeBit         = 0x80
	voteConvictionMask = 0x7f
)

type ConvictionVoting struct {
	querySet
}

func NewConvictionVoting(rt Runtime) *ConvictionVoting {
	return &ConvictionVoting{querySet: newQuerySet(rt, entity.ModuleConvictionVoting)}
}

// ClassLocks reads the per-class locks of every account, keeping classes with a positive amount.
func (c *ConvictionVoting) ClassLocks(ctx context.Context, accounts []string) ([]entity.AccountClassLocks, error) {
	if err := c.begin(accounts); err != nil {
		return nil, err
	}

	raw, err := c.values(ctx, ConvictionVotingClassLocksFor, accountKeys(accounts))
	if err != nil {
		return nil, err
	}

	out := make([]entity.AccountClassLocks, 0, len(raw))
	for i, r := range raw {
		pairs, _, err := decode[[][2]json.RawMessage](r)
		if err != nil {
			return nil, c.decodeError(ConvictionVotingClassLocksFor, err)
		}
		locks := entity.AccountClassLocks{Account: accounts[i], Classes: []entity.ClassLock{}}
		for _, p := range pairs {
			var class uint16
			if err := jsonAPI.Unmarshal(p[0], &class); err != nil {
				return nil, c.decodeError(ConvictionVotingClassLocksFor, err)
			}
			var amt amount
			if err := jsonAPI.Unmarshal(p[1], &amt); err != nil {
				return nil, c.decodeError(ConvictionVotingClassLocksFor, err)
			}
			if v := amt.Int(); v.Sign() > 0 {
				locks.Classes = append(locks.Classes, entity.ClassLock{Class: class, Amount: v})
			}
		}
		out = append(out, locks)
	}
	return out, nil
}

// AccountBalance returns the amount locked by voting. Class locks of one account overlap,
// so each account contributes its largest class lock.
func (c *ConvictionVoting) AccountBalance(ctx context.Context, accounts []string) (*big.Int, error) {
	locks, err := c.ClassLocks(ctx, accounts)
	if err != nil {
		return nil, err
	}

	total := new(big.Int)
	for _, acc := range locks {
		maxLock := new(big.Int)
		for _, cl := range acc.Classes {
			if cl.Amount.Cmp(maxLock) > 0 {
				maxLock.Set(cl.Amount)
			}
		}
		total.Add(total, maxLock)
	}
	return total, nil
}

type voting struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type casting struct {
	Votes [][2]json.RawMessage `json:"votes"`
}

type delegating struct {
	Balance    amount   `json:"balance"`
	Target     string   `json:"target"`
	Conviction enumName `json:"conviction"`
}

type accountVote struct {
	Type  string `json:"type"`
	Value struct {
		Vote    *uint8 `json:"vote"`
		Balance amount `json:"balance"`
		Aye     amount `json:"aye"`
		Nay     amount `json:"nay"`
		Abstain amount `json:"abstain"`
	} `json:"value"`
}

// LockDetails lists the votes and delegations behind the voting locks of the accounts.
// Referendum outcomes are attached when the chain has the Referenda module.
func (c *ConvictionVoting) LockDetails(ctx context.Context, accounts []string) ([]entity.VoteLock, error) {
	if err := c.begin(accounts); err != nil {
		return nil, err
	}
	if err := c.compatible(ConvictionVotingVotingFor); err != nil {
		return nil, err
	}

	classLocks, err := c.ClassLocks(ctx, accounts)
	if err != nil {
		return nil, err
	}

	var (
		keys    []entity.StorageKey
		owners  []string
		classes []uint16
	)
	for _, acc := range classLocks {
		for _, cl := range acc.Classes {
			keys = append(keys, entity.StorageKey{acc.Account, cl.Class})
			owners = append(owners, acc.Account)
			classes = append(classes, cl.Class)
		}
	}
	if len(keys) == 0 {
		return []entity.VoteLock{}, nil
	}

	raw, err := c.values(ctx, ConvictionVotingVotingFor, keys)
	if err != nil {
		return nil, err
	}

	out := []entity.VoteLock{}
	for i, r := range raw {
		v, ok, err := decode[voting](r)
		if err != nil {
			return nil, c.decodeError(ConvictionVotingVotingFor, err)
		}
		if !ok {
			continue
		}
		locks, err := expandVoting(v, owners[i], classes[i])
		if err != nil {
			return nil, c.decodeError(ConvictionVotingVotingFor, err)
		}
		out = append(out, locks...)
	}

	c.attachOutcomes(ctx, out)
	return out, nil
}

func expandVoting(v voting, account string, class uint16) ([]entity.VoteLock, error) {
	switch v.Type {
	case "Casting":
		var cs casting
		if err := jsonAPI.Unmarshal(v.Value, &cs); err != nil {
			return nil, err
		}
		out := make([]entity.VoteLock, 0, len(cs.Votes))
		for _, pair := range cs.Votes {
			var refID uint32
			if err := jsonAPI.Unmarshal(pair[0], &refID); err != nil {
				return nil, err
			}
			var av accountVote
			if err := jsonAPI.Unmarshal(pair[1], &av); err != nil {
				return nil, err
			}
			lock, err := castVote(av)
			if err != nil {
				return nil, err
			}
			id := refID
			lock.Account = account
			lock.Class = class
			lock.ReferendumID = &id
			out = append(out, lock)
		}
		return out, nil
	case "Delegating":
		var d delegating
		if err := jsonAPI.Unmarshal(v.Value, &d); err != nil {
			return nil, err
		}
		conviction := entity.Conviction(d.Conviction)
		return []entity.VoteLock{{
			Account:     account,
			Class:       class,
			VoteType:    "Delegating",
			Conviction:  conviction,
			Balance:     d.Balance.Int(),
			LockPeriods: conviction.LockPeriods(),
			Target:      d.Target,
		}}, nil
	default:
		return nil, fmt.Errorf("unknown voting variant %q", v.Type)
	}
}

func castVote(av accountVote) (entity.VoteLock, error) {
	switch av.Type {
	case "Standard":
		if av.Value.Vote == nil {
			return entity.VoteLock{}, fmt.Errorf("standard vote without vote byte")
		}
		vote := *av.Value.Vote
		conviction := convictionOf(vote)
		direction := entity.VoteNay
		if vote&voteAyeBit != 0 {
			direction = entity.VoteAye
		}
		return entity.VoteLock{
			VoteType:    av.Type,
			Direction:   direction,
			Conviction:  conviction,
			Balance:     av.Value.Balance.Int(),
			LockPeriods: conviction.LockPeriods(),
		}, nil
	case "Split":
		return entity.VoteLock{
			VoteType:   av.Type,
			Direction:  entity.VoteSplit,
			Conviction: entity.ConvictionNone,
			Balance:    utils.SumBigInts(av.Value.Aye.Int(), av.Value.Nay.Int()),
		}, nil
	case "SplitAbstain":
		return entity.VoteLock{
			VoteType:   av.Type,
			Direction:  entity.VoteAbstain,
			Conviction: entity.ConvictionNone,
			Balance:    utils.SumBigInts(av.Value.Aye.Int(), av.Value.Nay.Int(), av.Value.Abstain.Int()),
		}, nil
	default:
		return entity.VoteLock{}, fmt.Errorf("unknown vote variant %q", av.Type)
	}
}

// convictionOf reads the conviction from the low bits of a vote byte.
// Values past Locked6x are not valid convictions and read as None.
func convictionOf(vote uint8) entity.Conviction {
	idx := int(vote & voteConvictionMask)
	if idx >= len(entity.Convictions) {
		return entity.ConvictionNone
	}
	return entity.Convictions[idx]
}

// attachOutcomes resolves the referenda voted on. Failures leave outcomes unset.
func (c *ConvictionVoting) attachOutcomes(ctx context.Context, locks []entity.VoteLock) {
	if !c.rt.Modules.Has(entity.ModuleReferenda) {
		return
	}

	seen := make(map[uint32]struct{})
	var ids []uint32
	for _, l := range locks {
		if l.ReferendumID == nil {
			continue
		}
		if _, ok := seen[*l.ReferendumID]; !ok {
			seen[*l.ReferendumID] = struct{}{}
			ids = append(ids, *l.ReferendumID)
		}
	}
	if len(ids) == 0 {
		return
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	keys := make([]entity.StorageKey, len(ids))
	for i, id := range ids {
		keys[i] = entity.StorageKey{id}
	}
	raw, err := c.values(ctx, ReferendaReferendumInfoFor, keys)
	if err != nil {
		c.log.Debug("referendum outcomes unavailable",
			"code", huberrors.CodePartialSourceFailure, "error", err)
		return
	}

	outcomes := make(map[uint32]*entity.ReferendumOutcome, len(ids))
	for i, r := range raw {
		info, ok, err := decode[voting](r)
		if err != nil || !ok {
			continue
		}
		outcomes[ids[i]] = referendumOutcome(info)
	}
	for i := range locks {
		if locks[i].ReferendumID != nil {
			locks[i].Outcome = outcomes[*locks[i].ReferendumID]
		}
	}
}

func referendumOutcome(info voting) *entity.ReferendumOutcome {
	out := &entity.ReferendumOutcome{Status: info.Type}
	switch info.Type {
	case "Ongoing":
		return out
	case "Killed":
		var block uint32
		if err := jsonAPI.Unmarshal(info.Value, &block); err == nil {
			out.Ended = &block
		}
	default:
		var fields []json.RawMessage
		if err := jsonAPI.Unmarshal(info.Value, &fields); err == nil && len(fields) > 0 {
			var block uint32
			if err := jsonAPI.Unmarshal(fields[0], &block); err == nil {
				out.Ended = &block
			}
		}
	}
	switch info.Type {
	case "Approved":
		out.Side = entity.VoteAye
	case "Rejected":
		out.Side = entity.VoteNay
	}
	return out
}
