package entity

import (
	"context"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type CreateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	Gender       Gender `json:"gender"`
	InterestedIn Gender `json:"interested_in"`
	Bio          string `json:"bio"`
}

func (r *CreateUserRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Name == "" {
		problems["Name"] = append(problems["Name"], "Name is required")
	}

	if r.Email == "" {
		problems["Email"] = append(problems["Email"], "Email is required")
	} else if !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Username == "" {
		problems["Username"] = append(problems["Username"], "Username is required")
	}

	if len(r.Username) > 16 {
		problems["Username"] = append(problems["Username"], "User name is too long")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	if len([]byte(r.Password)) > 72 {
		problems["Password"] = append(problems["Password"], "Password length should not exceed 72 bytes")
	}

	if !r.Gender.Valid() {
		problems["Gender"] = append(problems["Gender"], "Gender must be male or female")
	}

	if !r.InterestedIn.Valid() && r.InterestedIn != InterestEveryone {
		problems["InterestedIn"] = append(problems["InterestedIn"], "Preference must be male, female or everyone")
	}

	return problems
}

type SignInRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *SignInRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if r.Email == "" && r.Username == "" {
		problems["Email/Username"] = append(problems["Email/Username"], "Either Email or Username is required")
	}

	if r.Email != "" && !emailRegex.MatchString(r.Email) {
		problems["Email"] = append(problems["Email"], "Invalid email format")
	}

	if r.Password == "" {
		problems["Password"] = append(problems["Password"], "Password is required")
	}

	return problems
}

type SwipeRequest struct {
	Decision string `json:"decision"`
}

func (r *SwipeRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if _, err := ParseDecision(r.Decision); err != nil {
		problems["Decision"] = append(problems["Decision"], "Decision must be like, dislike or superlike")
	}

	return problems
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

func (r *SendMessageRequest) Validate(ctx context.Context) (problems map[string][]string) {
	problems = make(map[string][]string)

	if strings.TrimSpace(r.Content) == "" {
		problems["Content"] = append(problems["Content"], "Content is required")
	}

	return problems
}
