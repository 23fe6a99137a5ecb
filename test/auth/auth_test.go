package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"testing"

	"github.com/danuartha/pairing-app/internal/entity"
	"github.com/danuartha/pairing-app/pkg/http_util"
	helper_test "github.com/danuartha/pairing-app/test/helper"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	resources, err := helper_test.SetupTestServer(context.TODO())
	var code int

	if err != nil {
		log.Printf("Failed to set up test server: %s", err)
		code = 1
	} else {
		code = m.Run()
	}

	resources.CleanupTestServer()
	os.Exit(code)
}

func TestSignUp(t *testing.T) {
	reqBody := entity.CreateUserRequest{
		Name:         "testname",
		Username:     "testuser",
		Password:     "password123",
		Email:        "test@example.com",
		Gender:       entity.GenderMale,
		InterestedIn: entity.GenderFemale,
	}
	body, _ := json.Marshal(reqBody)

	req, err := http.NewRequest(http.MethodPost, helper_test.BaseURL+"/v1/auth/sign-up", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	response := http_util.HTTPResponse[entity.SignUpResponse]{}
	response, err = http_util.DecodeBody(bodyBytes, response)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	assert.Equal(t, "testuser", response.Data.Username)
	assert.NotZero(t, response.Data.ID)
}

func TestSignUpRejectsMissingGender(t *testing.T) {
	reqBody := entity.CreateUserRequest{
		Name:     "testname",
		Username: "nogender",
		Password: "password123",
		Email:    "nogender@example.com",
	}
	body, _ := json.Marshal(reqBody)

	req, err := http.NewRequest(http.MethodPost, helper_test.BaseURL+"/v1/auth/sign-up", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignIn(t *testing.T) {
	user := helper_test.SignUpUser(t, "signin123", "password123", "signin123@example.com", entity.GenderFemale, entity.InterestEveryone)

	token := helper_test.SignInUser(t, user.Email, user.Username, "password123")
	assert.NotEmpty(t, token)
}

func TestSignInRejectsWrongPassword(t *testing.T) {
	user := helper_test.SignUpUser(t, "wrongpw1", "password123", "wrongpw1@example.com", entity.GenderFemale, entity.InterestEveryone)

	reqBody := entity.SignInRequest{
		Email:    user.Email,
		Username: user.Username,
		Password: "not-the-password",
	}
	body, _ := json.Marshal(reqBody)

	req, err := http.NewRequest(http.MethodPost, helper_test.BaseURL+"/v1/auth/sign-in", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to send request: %v", err)
	}
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	for _, url := range []string{
		helper_test.BaseURL + "/v1/match/candidates",
		helper_test.BaseURL + "/v1/match/pairings",
		helper_test.BaseURL + "/v1/chat/1/messages",
	} {
		resp, err := http.Get(url)
		if err != nil {
			t.Fatalf("Failed to send request: %v", err)
		}
		resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}
