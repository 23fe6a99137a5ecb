package userRepo

import (
	"context"
	"errors"

	"github.com/danuartha/pairing-app/internal/entity"
	"gorm.io/gorm"
)

type IUserRepo interface {
	CreateUser(ctx context.Context, user *entity.User) (*entity.User, error)
	GetUserByID(ctx context.Context, id uint) (*entity.User, error)
	GetUserByUnameOrEmail(ctx context.Context, email, uname string) (*entity.User, error)
	AddPhoto(ctx context.Context, photo *entity.Photo) error

	// GetCandidateProfiles samples up to limit users uniformly at random,
	// excluding the given IDs and honoring the actor's stated preference.
	GetCandidateProfiles(ctx context.Context, actor *entity.User, excludeIDs []uint, limit int) ([]entity.User, error)
}

type UserRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) IUserRepo {
	return &UserRepo{
		db: db,
	}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	result := r.db.WithContext(ctx).Create(user)
	return user, result.Error
}

func (r *UserRepo) GetUserByID(ctx context.Context, id uint) (*entity.User, error) {
	var user entity.User
	result := r.db.WithContext(ctx).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, entity.ErrTargetNotFound
	}
	return &user, result.Error
}

func (r *UserRepo) GetUserByUnameOrEmail(ctx context.Context, email, uname string) (*entity.User, error) {
	var user entity.User
	query := r.db.WithContext(ctx)
	if email != "" {
		query = query.Where("email = ?", email)
	}
	if uname != "" {
		query = query.Or("username = ?", uname)
	}
	result := query.First(&user)
	return &user, result.Error
}

func (r *UserRepo) AddPhoto(ctx context.Context, photo *entity.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *UserRepo) GetCandidateProfiles(ctx context.Context, actor *entity.User, excludeIDs []uint, limit int) ([]entity.User, error) {
	var profiles []entity.User

	subquery := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Select("id").
		Where("id NOT IN ?", append(excludeIDs, actor.ID)).
		Order("RANDOM()").
		Limit(limit)

	if actor.InterestedIn != entity.InterestEveryone {
		subquery = subquery.Where("gender = ?", actor.InterestedIn)
	}

	res := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id IN (?)", subquery).
		Find(&profiles)

	return profiles, res.Error
}
