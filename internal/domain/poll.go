package domain

import (
	"sort"
	"time"
)

type DatePollEntry struct {
	ID        uint
	MeetingID uint
	StartDate time.Time
	EndDate   time.Time
	Voters    []User
	CreatedAt time.Time
}

type NewDatePollEntry struct {
	StartDate time.Time
	EndDate   time.Time
}

// Vote is a user's stance on one poll entry. Only Yes is stored; a missing
// vote row reads as Unvoted, so No and Unvoted are indistinguishable once persisted.
type Vote int

const (
	VoteUnvoted Vote = iota
	VoteYes
	VoteNo
)

func VoteFromBool(yes bool) Vote {
	if yes {
		return VoteYes
	}
	return VoteNo
}

type VoteAction int

const (
	VoteActionNone VoteAction = iota
	VoteActionInsert
	VoteActionDelete
)

// ResolveVote decides what happens to the vote row when a user asks for desired
// on an entry where their current vote is current.
func ResolveVote(current, desired Vote) VoteAction {
	hasRow := current == VoteYes
	switch {
	case !hasRow && desired == VoteYes:
		return VoteActionInsert
	case hasRow && desired != VoteYes:
		return VoteActionDelete
	default:
		return VoteActionNone
	}
}

// PollUpdate is one user's batch of changes to a meeting's date poll.
type PollUpdate struct {
	NewEntries []NewDatePollEntry
	Votes      map[uint]bool
}

func (p PollUpdate) AddsEntries() bool {
	return len(p.NewEntries) > 0
}

// VotedEntryIDs returns the referenced entry ids in ascending order.
func (p PollUpdate) VotedEntryIDs() []uint {
	ids := make([]uint, 0, len(p.Votes))
	for id := range p.Votes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SortByPopularity returns a copy of entries ordered by vote count, most voted
// first, with ties broken by the earlier start date.
func SortByPopularity(entries []DatePollEntry) []DatePollEntry {
	sorted := make([]DatePollEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if len(sorted[i].Voters) != len(sorted[j].Voters) {
			return len(sorted[i].Voters) > len(sorted[j].Voters)
		}
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})
	return sorted
}
