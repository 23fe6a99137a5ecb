package chat_test

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"testing"

	"github.com/danuartha/pairing-app/internal/entity"
	helper_test "github.com/danuartha/pairing-app/test/helper"
	"gotest.tools/assert"
)

var globalResources *helper_test.TestServerResources

func TestMain(m *testing.M) {
	resources, err := helper_test.SetupTestServer(context.TODO())
	var code int

	if err != nil {
		log.Printf("Failed to set up test server: %s", err)
		code = 1
	} else {
		globalResources = resources
		code = m.Run()
	}

	resources.CleanupTestServer()
	os.Exit(code)
}

// setupMatchedPair signs up two users, matches them through the API and
// returns their tokens with the resulting pairing.
func setupMatchedPair(t *testing.T, tag string) (a, b entity.SignUpResponse, tokenA, tokenB string, pairingID uint) {
	t.Helper()

	a = helper_test.SignUpUser(t, "cm"+tag, "password123", "cm"+tag+"@example.com", entity.GenderMale, entity.GenderFemale)
	tokenA = helper_test.SignInUser(t, a.Email, a.Username, "password123")

	b = helper_test.SignUpUser(t, "cf"+tag, "password123", "cf"+tag+"@example.com", entity.GenderFemale, entity.GenderMale)
	tokenB = helper_test.SignInUser(t, b.Email, b.Username, "password123")

	helper_test.DoSwipe(t, tokenA, uint(b.ID), "like")
	_, resp := helper_test.DoSwipe(t, tokenB, uint(a.ID), "like")
	assert.Equal(t, resp.Matched, true)

	pairings := helper_test.GetPairings(t, tokenA)
	assert.Equal(t, len(pairings), 1)

	return a, b, tokenA, tokenB, pairings[0].PairingID
}

func TestMessageOrder(t *testing.T) {
	_, _, tokenA, tokenB, pairingID := setupMatchedPair(t, "order1")

	contents := []string{"hey", "hi there", "how are you", "pretty good", "nice"}
	for i, content := range contents {
		token := tokenA
		if i%2 == 1 {
			token = tokenB
		}
		status, _ := helper_test.SendMessage(t, token, pairingID, content)
		assert.Equal(t, status, http.StatusOK)
	}

	status, messages := helper_test.ListMessages(t, tokenA, pairingID)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, len(messages), len(contents))

	for i, message := range messages {
		assert.Equal(t, message.Content, contents[i])
		assert.Equal(t, message.PairingID, pairingID)
		if i > 0 {
			assert.Assert(t, !message.CreatedAt.Before(messages[i-1].CreatedAt),
				"messages must be ordered oldest first")
		}
	}
}

func TestNonMemberForbidden(t *testing.T) {
	_, _, tokenA, _, pairingID := setupMatchedPair(t, "member1")

	outsider := helper_test.SignUpUser(t, "cmout1", "password123", "cmout1@example.com", entity.GenderMale, entity.GenderFemale)
	outsiderToken := helper_test.SignInUser(t, outsider.Email, outsider.Username, "password123")

	status, _ := helper_test.SendMessage(t, outsiderToken, pairingID, "let me in")
	assert.Equal(t, status, http.StatusForbidden)

	status, _ = helper_test.ListMessages(t, outsiderToken, pairingID)
	assert.Equal(t, status, http.StatusForbidden)

	status, _ = helper_test.MarkRead(t, outsiderToken, pairingID)
	assert.Equal(t, status, http.StatusForbidden)

	// The member can still read an empty log.
	status, messages := helper_test.ListMessages(t, tokenA, pairingID)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, len(messages), 0)
}

func TestEmptyMessageRejected(t *testing.T) {
	_, _, tokenA, _, pairingID := setupMatchedPair(t, "empty1")

	status, _ := helper_test.SendMessage(t, tokenA, pairingID, "")
	assert.Equal(t, status, http.StatusBadRequest)

	status, _ = helper_test.SendMessage(t, tokenA, pairingID, "   ")
	assert.Equal(t, status, http.StatusBadRequest)

	status, messages := helper_test.ListMessages(t, tokenA, pairingID)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, len(messages), 0)
}

func TestUnknownPairingNotFound(t *testing.T) {
	user := helper_test.SignUpUser(t, "cmnf1", "password123", "cmnf1@example.com", entity.GenderMale, entity.GenderFemale)
	token := helper_test.SignInUser(t, user.Email, user.Username, "password123")

	status, _ := helper_test.ListMessages(t, token, 99999999)
	assert.Equal(t, status, http.StatusNotFound)

	status, _ = helper_test.SendMessage(t, token, 99999999, "anyone here?")
	assert.Equal(t, status, http.StatusNotFound)
}

func TestMarkRead(t *testing.T) {
	a, _, tokenA, tokenB, pairingID := setupMatchedPair(t, "read1")

	for i := 0; i < 3; i++ {
		helper_test.SendMessage(t, tokenA, pairingID, fmt.Sprintf("message %d", i))
	}
	helper_test.SendMessage(t, tokenB, pairingID, "a reply")

	// New messages arrive unread.
	status, messages := helper_test.ListMessages(t, tokenB, pairingID)
	assert.Equal(t, status, http.StatusOK)
	for _, message := range messages {
		assert.Equal(t, message.IsRead, false)
	}

	// B reads: only A's messages flip.
	status, updated := helper_test.MarkRead(t, tokenB, pairingID)
	assert.Equal(t, status, http.StatusOK)
	assert.Equal(t, updated, int64(3))

	_, messages = helper_test.ListMessages(t, tokenB, pairingID)
	for _, message := range messages {
		if message.SenderID == uint(a.ID) {
			assert.Equal(t, message.IsRead, true)
		} else {
			assert.Equal(t, message.IsRead, false)
		}
	}

	// Marking again is a no-op.
	_, updated = helper_test.MarkRead(t, tokenB, pairingID)
	assert.Equal(t, updated, int64(0))
}
