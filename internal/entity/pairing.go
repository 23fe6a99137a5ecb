package entity

import "time"

// Pairing is a confirmed mutual match. Rows always store the smaller
// identifier in UserLowID so one couple can never occupy two rows.
type Pairing struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	UserLowID  uint      `gorm:"column:user_low_id;not null;uniqueIndex:idx_pairings_users" json:"user_low_id"`
	UserHighID uint      `gorm:"column:user_high_id;not null;uniqueIndex:idx_pairings_users" json:"user_high_id"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;not null" json:"created_at"`
}

func (Pairing) TableName() string {
	return "pairings"
}

// CanonicalPair normalizes an unordered user pair to its stored form.
func CanonicalPair(a, b uint) (low, high uint) {
	if a < b {
		return a, b
	}
	return b, a
}

func (p *Pairing) HasUser(userID uint) bool {
	return p.UserLowID == userID || p.UserHighID == userID
}

// OtherUserID resolves the counterpart of userID in this pairing.
func (p *Pairing) OtherUserID(userID uint) (uint, bool) {
	switch userID {
	case p.UserLowID:
		return p.UserHighID, true
	case p.UserHighID:
		return p.UserLowID, true
	default:
		return 0, false
	}
}
