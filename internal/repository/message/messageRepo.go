package messageRepo

import (
	"context"
	"errors"
	"time"

	"github.com/danuartha/pairing-app/internal/entity"
	"gorm.io/gorm"
)

type IMessageRepo interface {
	CreateMessage(ctx context.Context, pairingID, senderID uint, content string) (*entity.Message, error)

	// GetMessagesByPairing returns the pairing's log oldest first.
	GetMessagesByPairing(ctx context.Context, pairingID uint) ([]entity.Message, error)

	// GetLastMessage returns the newest message, or (nil, nil) for a
	// pairing with no messages yet.
	GetLastMessage(ctx context.Context, pairingID uint) (*entity.Message, error)

	// MarkMessagesRead flips is_read on every message in the pairing not
	// sent by readerID, returning how many rows changed.
	MarkMessagesRead(ctx context.Context, pairingID, readerID uint) (int64, error)
}

type MessageRepo struct {
	db *gorm.DB
}

func NewMessageRepo(db *gorm.DB) IMessageRepo {
	return &MessageRepo{
		db: db,
	}
}

func (r *MessageRepo) CreateMessage(ctx context.Context, pairingID, senderID uint, content string) (*entity.Message, error) {
	message := entity.Message{
		PairingID: pairingID,
		SenderID:  senderID,
		Content:   content,
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	res := r.db.WithContext(ctx).Create(&message)
	if res.Error != nil {
		return nil, res.Error
	}

	return &message, nil
}

func (r *MessageRepo) GetMessagesByPairing(ctx context.Context, pairingID uint) ([]entity.Message, error) {
	var messages []entity.Message
	res := r.db.WithContext(ctx).
		Where("pairing_id = ?", pairingID).
		Order("created_at ASC, id ASC").
		Find(&messages)

	return messages, res.Error
}

func (r *MessageRepo) GetLastMessage(ctx context.Context, pairingID uint) (*entity.Message, error) {
	var message entity.Message
	res := r.db.WithContext(ctx).
		Where("pairing_id = ?", pairingID).
		Order("created_at DESC, id DESC").
		First(&message)

	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}

	return &message, nil
}

func (r *MessageRepo) MarkMessagesRead(ctx context.Context, pairingID, readerID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.Message{}).
		Where("pairing_id = ? AND sender_id != ? AND is_read = ?", pairingID, readerID, false).
		Update("is_read", true)

	return res.RowsAffected, res.Error
}
