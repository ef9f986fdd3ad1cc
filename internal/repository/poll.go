package repository

import (
	"context"
	"fmt"

	"github.com/vietanh2810/meetup-api/internal/domain"
	"github.com/vietanh2810/meetup-api/internal/repository/dao"
)

// ApplyPollUpdate stores userID's new entries, each with a yes vote from userID,
// and reconciles the vote rows against update.Votes. Every referenced entry is
// checked against the meeting before anything is written, so an unknown id
// leaves the poll untouched. The meeting's entries are returned in creation order.
func (r *MeetingRepository) ApplyPollUpdate(ctx context.Context, meetingID, userID uint, update domain.PollUpdate) ([]domain.DatePollEntry, error) {
	var entries []dao.DatePollEntry

	err := r.dao.Transaction(ctx, func(tx *dao.MeetingDAO) error {
		ids := update.VotedEntryIDs()

		found, err := tx.FindPollEntryIDs(ctx, meetingID, ids)
		if err != nil {
			return fmt.Errorf("tx.FindPollEntryIDs -> %w", err)
		}
		if len(found) != len(ids) {
			return ErrPollEntryNotFound
		}

		if update.AddsEntries() {
			rows := make([]dao.DatePollEntry, 0, len(update.NewEntries))
			for _, e := range update.NewEntries {
				rows = append(rows, dao.DatePollEntry{
					MeetingID: meetingID,
					StartDate: e.StartDate,
					EndDate:   e.EndDate,
				})
			}

			created, err := tx.InsertPollEntries(ctx, rows)
			if err != nil {
				return fmt.Errorf("tx.InsertPollEntries -> %w", err)
			}

			votes := make([]dao.DatePollVote, 0, len(created))
			for _, e := range created {
				votes = append(votes, dao.DatePollVote{DatePollEntryID: e.ID, UserID: userID})
			}
			if err = tx.InsertVotes(ctx, votes); err != nil {
				return fmt.Errorf("tx.InsertVotes -> %w", err)
			}
		}

		voted, err := tx.FindVotedEntryIDs(ctx, userID, ids)
		if err != nil {
			return fmt.Errorf("tx.FindVotedEntryIDs -> %w", err)
		}
		current := make(map[uint]domain.Vote, len(voted))
		for _, id := range voted {
			current[id] = domain.VoteYes
		}

		var (
			inserts []dao.DatePollVote
			deletes []uint
		)
		for _, id := range ids {
			switch domain.ResolveVote(current[id], domain.VoteFromBool(update.Votes[id])) {
			case domain.VoteActionInsert:
				inserts = append(inserts, dao.DatePollVote{DatePollEntryID: id, UserID: userID})
			case domain.VoteActionDelete:
				deletes = append(deletes, id)
			}
		}

		if err = tx.InsertVotes(ctx, inserts); err != nil {
			return fmt.Errorf("tx.InsertVotes -> %w", err)
		}
		if err = tx.DeleteVotes(ctx, userID, deletes); err != nil {
			return fmt.Errorf("tx.DeleteVotes -> %w", err)
		}

		entries, err = tx.FindPollEntries(ctx, meetingID)
		if err != nil {
			return fmt.Errorf("tx.FindPollEntries -> %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Transaction -> %w", err)
	}

	return pollEntriesToDomain(entries), nil
}

func pollEntriesToDomain(rows []dao.DatePollEntry) []domain.DatePollEntry {
	entries := make([]domain.DatePollEntry, 0, len(rows))
	for _, row := range rows {
		voters := make([]domain.User, 0, len(row.Votes))
		for _, v := range row.Votes {
			voters = append(voters, userToDomain(v.User))
		}

		entries = append(entries, domain.DatePollEntry{
			ID:        row.ID,
			MeetingID: row.MeetingID,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			Voters:    voters,
			CreatedAt: row.CreatedAt,
		})
	}
	return entries
}
