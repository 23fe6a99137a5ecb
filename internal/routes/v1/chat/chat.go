package routesV1Chat

import (
	"net/http"
	"strconv"

	"github.com/danuartha/pairing-app/internal/entity"
	"github.com/danuartha/pairing-app/internal/usecase/chat"
	"github.com/danuartha/pairing-app/pkg/http_util"
	"github.com/labstack/echo"
)

func ListMessagesHandler(c echo.Context, chatCase chat.IChatUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	pairingID, err := strconv.Atoi(c.Param("pairingID"))
	if err != nil || pairingID <= 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid pairing id"})
	}

	messages, err := chatCase.ListMessages(c.Request().Context(), uint(pairingID), user.ID)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.MessageListResponse]{
		Message: "Messages fetched successfully",
		Data: entity.MessageListResponse{
			Messages: messages,
		},
	})
}

func SendMessageHandler(c echo.Context, chatCase chat.IChatUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	pairingID, err := strconv.Atoi(c.Param("pairingID"))
	if err != nil || pairingID <= 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid pairing id"})
	}

	reqBody, err := http_util.Decode[entity.SendMessageRequest](c)
	if err != nil {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	problems := reqBody.Validate(c.Request().Context())
	if len(problems) != 0 {
		return http_util.EncodeProblems(c, problems)
	}

	message, err := chatCase.SendMessage(c.Request().Context(), uint(pairingID), user.ID, reqBody.Content)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.Message]{
		Message: "Message sent",
		Data:    *message,
	})
}

func MarkReadHandler(c echo.Context, chatCase chat.IChatUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	pairingID, err := strconv.Atoi(c.Param("pairingID"))
	if err != nil || pairingID <= 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid pairing id"})
	}

	updated, err := chatCase.MarkRead(c.Request().Context(), uint(pairingID), user.ID)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.MarkReadResponse]{
		Message: "Messages marked as read",
		Data: entity.MarkReadResponse{
			Updated: updated,
		},
	})
}
