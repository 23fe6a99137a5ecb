package chat

import (
	"context"
	"strings"

	"github.com/danuartha/pairing-app/internal/entity"
	messageRepo "github.com/danuartha/pairing-app/internal/repository/message"
	pairingRepo "github.com/danuartha/pairing-app/internal/repository/pairing"
)

type IChatUseCase interface {
	// ListMessages returns the pairing's log oldest first, after checking
	// the requester is one of its two members.
	ListMessages(ctx context.Context, pairingID, requesterID uint) ([]entity.Message, error)

	SendMessage(ctx context.Context, pairingID, senderID uint, content string) (*entity.Message, error)

	// MarkRead flips is_read on the requester's incoming messages.
	MarkRead(ctx context.Context, pairingID, readerID uint) (int64, error)
}

type chatUseCase struct {
	pairingRepo pairingRepo.IPairingRepo
	messageRepo messageRepo.IMessageRepo
}

func NewChatUseCase(pairingRepo pairingRepo.IPairingRepo, messageRepo messageRepo.IMessageRepo) IChatUseCase {
	return &chatUseCase{
		pairingRepo: pairingRepo,
		messageRepo: messageRepo,
	}
}

func (s *chatUseCase) ListMessages(ctx context.Context, pairingID, requesterID uint) ([]entity.Message, error) {
	if err := s.requireMember(ctx, pairingID, requesterID); err != nil {
		return nil, err
	}

	return s.messageRepo.GetMessagesByPairing(ctx, pairingID)
}

func (s *chatUseCase) SendMessage(ctx context.Context, pairingID, senderID uint, content string) (*entity.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entity.ErrEmptyMessage
	}

	if err := s.requireMember(ctx, pairingID, senderID); err != nil {
		return nil, err
	}

	return s.messageRepo.CreateMessage(ctx, pairingID, senderID, content)
}

func (s *chatUseCase) MarkRead(ctx context.Context, pairingID, readerID uint) (int64, error) {
	if err := s.requireMember(ctx, pairingID, readerID); err != nil {
		return 0, err
	}

	return s.messageRepo.MarkMessagesRead(ctx, pairingID, readerID)
}

func (s *chatUseCase) requireMember(ctx context.Context, pairingID, userID uint) error {
	pairing, err := s.pairingRepo.GetPairing(ctx, pairingID)
	if err != nil {
		return err
	}

	if !pairing.HasUser(userID) {
		return entity.ErrForbidden
	}

	return nil
}
