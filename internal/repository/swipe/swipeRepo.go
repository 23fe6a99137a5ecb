package swipeRepo

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/danuartha/pairing-app/internal/entity"
	"github.com/go-redis/redis"

	"gorm.io/gorm"
)

// swipedSetTTL bounds the lifetime of the per-user exclusion cache; the
// swipes table stays the source of truth.
const swipedSetTTL = 24 * time.Hour

type ISwipeRepo interface {
	// CreateSwipe appends the actor's one-time decision about a target.
	// Fails with entity.ErrDuplicateDecision when a row for (actor,
	// target) already exists; the ledger never overwrites.
	CreateSwipe(ctx context.Context, actorID, targetID uint, decision entity.Decision) (*entity.Swipe, error)

	// GetSwipedProfileIDs returns every target the actor has decided on,
	// in either direction of outcome. Backs candidate exclusion.
	GetSwipedProfileIDs(ctx context.Context, actorID uint) ([]uint, error)

	// GetReciprocalPositiveSwipe looks up a like or superlike from
	// actorID toward targetID. Returns (nil, nil) when absent.
	GetReciprocalPositiveSwipe(ctx context.Context, actorID, targetID uint) (*entity.Swipe, error)
}

type SwipeRepo struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewSwipeRepo(db *gorm.DB, rdb *redis.Client) ISwipeRepo {
	return &SwipeRepo{
		db:  db,
		rdb: rdb,
	}
}

func (r *SwipeRepo) CreateSwipe(ctx context.Context, actorID, targetID uint, decision entity.Decision) (*entity.Swipe, error) {
	swipe := entity.Swipe{
		ActorID:   actorID,
		TargetID:  targetID,
		Decision:  decision,
		CreatedAt: time.Now(),
	}

	res := r.db.WithContext(ctx).Create(&swipe)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, entity.ErrDuplicateDecision
		}
		return nil, res.Error
	}

	r.appendSwipedCache(actorID, targetID)

	return &swipe, nil
}

func (r *SwipeRepo) GetSwipedProfileIDs(ctx context.Context, actorID uint) ([]uint, error) {
	key := swipedSetKey(actorID)

	exists, err := r.rdb.Exists(key).Result()
	if err != nil {
		return nil, err
	}

	var ids []uint

	if exists == 0 {
		res := r.db.WithContext(ctx).
			Model(&entity.Swipe{}).
			Select("target_id").
			Where("actor_id = ?", actorID).
			Find(&ids)
		if res.Error != nil {
			return nil, res.Error
		}

		for _, id := range ids {
			if err := r.rdb.SAdd(key, strconv.FormatUint(uint64(id), 10)).Err(); err != nil {
				log.Println("error filling swiped-profiles cache", err)
				break
			}
		}
		r.rdb.Expire(key, swipedSetTTL)

		return ids, nil
	}

	if err := r.rdb.SMembers(key).ScanSlice(&ids); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *SwipeRepo) GetReciprocalPositiveSwipe(ctx context.Context, actorID, targetID uint) (*entity.Swipe, error) {
	var swipe entity.Swipe
	res := r.db.WithContext(ctx).
		Model(&entity.Swipe{}).
		Where("actor_id = ? AND target_id = ? AND decision IN ?",
			actorID, targetID, []entity.Decision{entity.DecisionLike, entity.DecisionSuperLike}).
		First(&swipe)

	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if res.Error != nil {
		return nil, res.Error
	}

	return &swipe, nil
}

// appendSwipedCache extends a warm exclusion set. A cold key is left for
// GetSwipedProfileIDs to fill from the table, otherwise a lone member
// would masquerade as the full set.
func (r *SwipeRepo) appendSwipedCache(actorID, targetID uint) {
	key := swipedSetKey(actorID)

	exists, err := r.rdb.Exists(key).Result()
	if err != nil || exists == 0 {
		return
	}

	if err := r.rdb.SAdd(key, strconv.FormatUint(uint64(targetID), 10)).Err(); err != nil {
		log.Println("error updating swiped-profiles cache", err)
	}
}

func swipedSetKey(actorID uint) string {
	return ":user:" + strconv.Itoa(int(actorID)) + ":swiped:profiles"
}
