package entity

import "time"

type SignUpResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type SignInResponse struct {
	Token string `json:"token"`
}

// UserSummary is the compact profile shape shown in candidate decks and
// match lists.
type UserSummary struct {
	ID     uint     `json:"id"`
	Name   string   `json:"name"`
	Gender Gender   `json:"gender"`
	Photos []string `json:"photos"`
}

func NewUserSummary(u *User) UserSummary {
	photos := make([]string, 0, len(u.Photos))
	for _, p := range u.Photos {
		photos = append(photos, p.URL)
	}
	return UserSummary{
		ID:     u.ID,
		Name:   u.Name,
		Gender: u.Gender,
		Photos: photos,
	}
}

type CandidatesResponse struct {
	Profiles []UserSummary `json:"profiles"`
}

type SwipeResponse struct {
	Matched bool `json:"matched"`
}

type MessagePreview struct {
	SenderID uint      `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"sent_at"`
}

type PairingSummary struct {
	PairingID   uint            `json:"pairing_id"`
	Other       UserSummary     `json:"other"`
	LastMessage *MessagePreview `json:"last_message,omitempty"`
	MatchedAt   time.Time       `json:"matched_at"`
}

type PairingListResponse struct {
	Pairings []PairingSummary `json:"pairings"`
}

type PairingProfileResponse struct {
	Profile User `json:"profile"`
}

type MessageListResponse struct {
	Messages []Message `json:"messages"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}
