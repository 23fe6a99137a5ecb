package routesV1Match

import (
	"net/http"
	"strconv"

	"github.com/danuartha/pairing-app/internal/entity"
	"github.com/danuartha/pairing-app/internal/usecase/match"
	"github.com/danuartha/pairing-app/pkg/http_util"
	"github.com/labstack/echo"
)

func GetCandidatesHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	limit := match.DefaultCandidateLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid limit"})
		}
		limit = parsed
	}

	profiles, err := matchCase.GetCandidates(c.Request().Context(), user.ID, limit)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	summaries := make([]entity.UserSummary, 0, len(profiles))
	for i := range profiles {
		summaries = append(summaries, entity.NewUserSummary(&profiles[i]))
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.CandidatesResponse]{
		Message: "Candidates fetched successfully",
		Data: entity.CandidatesResponse{
			Profiles: summaries,
		},
	})
}

func SwipeHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	reqBody, err := http_util.Decode[entity.SwipeRequest](c)
	if err != nil {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	problems := reqBody.Validate(c.Request().Context())
	if len(problems) != 0 {
		return http_util.EncodeProblems(c, problems)
	}

	decision, err := entity.ParseDecision(reqBody.Decision)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil || targetID <= 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid profile id"})
	}

	result, err := matchCase.Swipe(c.Request().Context(), user.ID, uint(targetID), decision)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.SwipeResponse]{
		Message: "Swipe recorded",
		Data: entity.SwipeResponse{
			Matched: result.Matched,
		},
	})
}

func GetPairingsHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	pairings, err := matchCase.GetPairings(c.Request().Context(), user.ID)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.PairingListResponse]{
		Message: "Pairings fetched successfully",
		Data: entity.PairingListResponse{
			Pairings: pairings,
		},
	})
}

func GetPairingProfileHandler(c echo.Context, matchCase match.IMatchUseCase) error {
	user, ok := c.Get("userProfile").(*entity.User)
	if !ok {
		return http_util.Encode(c, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}

	pairingID, err := strconv.Atoi(c.Param("id"))
	if err != nil || pairingID <= 0 {
		return http_util.Encode(c, http.StatusBadRequest, map[string]string{"error": "invalid pairing id"})
	}

	profile, err := matchCase.GetPairingProfile(c.Request().Context(), uint(pairingID), user.ID)
	if err != nil {
		return http_util.EncodeError(c, err)
	}

	return http_util.Encode(c, http.StatusOK, http_util.HTTPResponse[entity.PairingProfileResponse]{
		Message: "Profile fetched successfully",
		Data: entity.PairingProfileResponse{
			Profile: *profile,
		},
	})
}
