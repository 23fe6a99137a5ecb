package authUseCase

import (
	"context"

	"github.com/danuartha/pairing-app/internal/entity"
	userRepo "github.com/danuartha/pairing-app/internal/repository/user"
	"github.com/danuartha/pairing-app/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type IAuthUseCase interface {
	SignupUser(ctx context.Context, request entity.CreateUserRequest) (*entity.User, error)
	SignIn(ctx context.Context, email, username, password string) (string, error)
}

type authUseCase struct {
	userRepo userRepo.IUserRepo
}

func New(userRepo userRepo.IUserRepo) IAuthUseCase {
	return &authUseCase{
		userRepo: userRepo,
	}
}

func (p *authUseCase) SignupUser(ctx context.Context, authData entity.CreateUserRequest) (*entity.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(authData.Password+authData.Email), 12)
	if err != nil {
		return nil, err
	}

	interestedIn := authData.InterestedIn
	if interestedIn == "" {
		interestedIn = entity.InterestEveryone
	}

	user := entity.User{
		Name:         authData.Name,
		Email:        authData.Email,
		Username:     authData.Username,
		Password:     string(hashedPassword),
		Gender:       authData.Gender,
		InterestedIn: interestedIn,
		Bio:          authData.Bio,
	}

	return p.userRepo.CreateUser(ctx, &user)
}

func (p *authUseCase) SignIn(ctx context.Context, email, username, password string) (string, error) {
	user, err := p.userRepo.GetUserByUnameOrEmail(ctx, email, username)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password+user.Email)); err != nil {
		return "", err
	}

	token, err := jwt.CreateToken(int(user.ID), user.Username)
	if err != nil {
		return "", err
	}
	return token, nil
}
