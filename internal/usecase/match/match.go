package match

import (
	"context"

	"github.com/danuartha/pairing-app/internal/entity"
	messageRepo "github.com/danuartha/pairing-app/internal/repository/message"
	pairingRepo "github.com/danuartha/pairing-app/internal/repository/pairing"
	swipeRepo "github.com/danuartha/pairing-app/internal/repository/swipe"
	userRepo "github.com/danuartha/pairing-app/internal/repository/user"
)

const DefaultCandidateLimit = 20

// MatchResult is the outcome of a swipe. Pairing is nil unless Matched;
// Created distinguishes a fresh pairing from one the race already made.
type MatchResult struct {
	Matched bool
	Created bool
	Pairing *entity.Pairing
}

type IMatchUseCase interface {
	GetCandidates(ctx context.Context, actorID uint, limit int) ([]entity.User, error)
	Swipe(ctx context.Context, actorID, targetID uint, decision entity.Decision) (*MatchResult, error)
	GetPairings(ctx context.Context, userID uint) ([]entity.PairingSummary, error)
	GetPairingProfile(ctx context.Context, pairingID, requesterID uint) (*entity.User, error)
}

type matchUseCase struct {
	userRepo    userRepo.IUserRepo
	swipeRepo   swipeRepo.ISwipeRepo
	pairingRepo pairingRepo.IPairingRepo
	messageRepo messageRepo.IMessageRepo
}

func NewMatchUseCase(
	userRepo userRepo.IUserRepo,
	swipeRepo swipeRepo.ISwipeRepo,
	pairingRepo pairingRepo.IPairingRepo,
	messageRepo messageRepo.IMessageRepo,
) IMatchUseCase {
	return &matchUseCase{
		userRepo:    userRepo,
		swipeRepo:   swipeRepo,
		pairingRepo: pairingRepo,
		messageRepo: messageRepo,
	}
}

func (m *matchUseCase) GetCandidates(ctx context.Context, actorID uint, limit int) ([]entity.User, error) {
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	actor, err := m.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	swipedIDs, err := m.swipeRepo.GetSwipedProfileIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return m.userRepo.GetCandidateProfiles(ctx, actor, swipedIDs, limit)
}

// Swipe appends the decision to the ledger, then runs match evaluation as
// a dependent step. The ledger write stays a pure write path; reciprocity
// is never checked before the row is durable.
func (m *matchUseCase) Swipe(ctx context.Context, actorID, targetID uint, decision entity.Decision) (*MatchResult, error) {
	if !decision.Valid() {
		return nil, entity.ErrInvalidDecision
	}
	if actorID == targetID {
		return nil, entity.ErrSelfSwipe
	}

	if _, err := m.userRepo.GetUserByID(ctx, targetID); err != nil {
		return nil, err
	}

	swipe, err := m.swipeRepo.CreateSwipe(ctx, actorID, targetID, decision)
	if err != nil {
		return nil, err
	}

	return m.evaluateForMatch(ctx, swipe)
}

// evaluateForMatch checks the new swipe for reciprocity. A like and a
// superlike are equally sufficient on either side.
func (m *matchUseCase) evaluateForMatch(ctx context.Context, swipe *entity.Swipe) (*MatchResult, error) {
	if !swipe.Decision.Positive() {
		return &MatchResult{}, nil
	}

	reciprocal, err := m.swipeRepo.GetReciprocalPositiveSwipe(ctx, swipe.TargetID, swipe.ActorID)
	if err != nil {
		return nil, err
	}
	if reciprocal == nil {
		return &MatchResult{}, nil
	}

	pairing, created, err := m.pairingRepo.FindOrCreate(ctx, swipe.ActorID, swipe.TargetID)
	if err != nil {
		return nil, err
	}

	return &MatchResult{
		Matched: true,
		Created: created,
		Pairing: pairing,
	}, nil
}

func (m *matchUseCase) GetPairings(ctx context.Context, userID uint) ([]entity.PairingSummary, error) {
	pairings, err := m.pairingRepo.GetPairingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]entity.PairingSummary, 0, len(pairings))

	for _, pairing := range pairings {
		otherID, ok := pairing.OtherUserID(userID)
		if !ok {
			continue
		}

		other, err := m.userRepo.GetUserByID(ctx, otherID)
		if err != nil {
			return nil, err
		}

		summary := entity.PairingSummary{
			PairingID: pairing.ID,
			Other:     entity.NewUserSummary(other),
			MatchedAt: pairing.CreatedAt,
		}

		last, err := m.messageRepo.GetLastMessage(ctx, pairing.ID)
		if err != nil {
			return nil, err
		}
		if last != nil {
			summary.LastMessage = &entity.MessagePreview{
				SenderID: last.SenderID,
				Content:  last.Content,
				SentAt:   last.CreatedAt,
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (m *matchUseCase) GetPairingProfile(ctx context.Context, pairingID, requesterID uint) (*entity.User, error) {
	pairing, err := m.pairingRepo.GetPairing(ctx, pairingID)
	if err != nil {
		return nil, err
	}

	otherID, ok := pairing.OtherUserID(requesterID)
	if !ok {
		return nil, entity.ErrForbidden
	}

	return m.userRepo.GetUserByID(ctx, otherID)
}
