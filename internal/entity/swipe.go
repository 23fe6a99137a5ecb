package entity

import (
	"fmt"
	"time"
)

type Decision uint

const (
	DecisionLike Decision = iota + 1
	DecisionDislike
	DecisionSuperLike
)

func (d Decision) String() string {
	switch d {
	case DecisionLike:
		return "like"
	case DecisionDislike:
		return "dislike"
	case DecisionSuperLike:
		return "superlike"
	default:
		return "unknown"
	}
}

func (d Decision) Valid() bool {
	return d == DecisionLike || d == DecisionDislike || d == DecisionSuperLike
}

// Positive reports whether the decision can contribute to a match.
// A superlike is not stronger than a like for reciprocity purposes.
func (d Decision) Positive() bool {
	return d == DecisionLike || d == DecisionSuperLike
}

func ParseDecision(s string) (Decision, error) {
	switch s {
	case "like":
		return DecisionLike, nil
	case "dislike":
		return DecisionDislike, nil
	case "superlike":
		return DecisionSuperLike, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDecision, s)
	}
}

// Swipe is one user's decision about another. The composite primary key
// makes (actor, target) unique for all time; there is no re-swipe.
type Swipe struct {
	ActorID   uint      `gorm:"column:actor_id;not null;primaryKey" json:"actor_id"`
	TargetID  uint      `gorm:"column:target_id;not null;primaryKey" json:"target_id"`
	Decision  Decision  `gorm:"column:decision;type:smallint;not null" json:"decision"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;not null" json:"created_at"`
}

func (Swipe) TableName() string {
	return "swipes"
}
