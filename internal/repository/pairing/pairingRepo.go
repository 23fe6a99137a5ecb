package pairingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/danuartha/pairing-app/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IPairingRepo interface {
	// FindOrCreate inserts the canonical pairing for an unordered user
	// pair, or returns the existing row. The created flag lets a
	// notification layer tell a fresh match from a known one.
	FindOrCreate(ctx context.Context, userA, userB uint) (pairing *entity.Pairing, created bool, err error)

	// GetPairingsForUser returns every pairing the user is a member of,
	// newest first.
	GetPairingsForUser(ctx context.Context, userID uint) ([]entity.Pairing, error)

	GetPairing(ctx context.Context, pairingID uint) (*entity.Pairing, error)
}

type PairingRepo struct {
	db *gorm.DB
}

func NewPairingRepo(db *gorm.DB) IPairingRepo {
	return &PairingRepo{
		db: db,
	}
}

func (r *PairingRepo) FindOrCreate(ctx context.Context, userA, userB uint) (*entity.Pairing, bool, error) {
	low, high := entity.CanonicalPair(userA, userB)

	pairing := entity.Pairing{
		UserLowID:  low,
		UserHighID: high,
		CreatedAt:  time.Now(),
	}

	// Single constrained insert. When two completing swipes race, the
	// loser's insert affects zero rows and the winner's row is read back.
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_low_id"}, {Name: "user_high_id"}},
			DoNothing: true,
		}).
		Create(&pairing)

	if res.Error != nil {
		return nil, false, res.Error
	}

	if res.RowsAffected == 1 {
		return &pairing, true, nil
	}

	var existing entity.Pairing
	findRes := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&existing)
	if findRes.Error != nil {
		return nil, false, findRes.Error
	}

	return &existing, false, nil
}

func (r *PairingRepo) GetPairingsForUser(ctx context.Context, userID uint) ([]entity.Pairing, error) {
	var pairings []entity.Pairing
	res := r.db.WithContext(ctx).
		Where("user_low_id = ? OR user_high_id = ?", userID, userID).
		Order("created_at DESC, id DESC").
		Find(&pairings)

	return pairings, res.Error
}

func (r *PairingRepo) GetPairing(ctx context.Context, pairingID uint) (*entity.Pairing, error) {
	var pairing entity.Pairing
	res := r.db.WithContext(ctx).Where("id = ?", pairingID).First(&pairing)

	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrPairingNotFound
	}
	if res.Error != nil {
		return nil, res.Error
	}

	return &pairing, nil
}
