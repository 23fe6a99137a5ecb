package routesV1

import (
	"github.com/danuartha/pairing-app/internal/middleware"
	userRepo "github.com/danuartha/pairing-app/internal/repository/user"
	routesV1Auth "github.com/danuartha/pairing-app/internal/routes/v1/auth"
	routesV1Chat "github.com/danuartha/pairing-app/internal/routes/v1/chat"
	routesV1Match "github.com/danuartha/pairing-app/internal/routes/v1/match"
	authUseCase "github.com/danuartha/pairing-app/internal/usecase/auth"
	"github.com/danuartha/pairing-app/internal/usecase/chat"
	"github.com/danuartha/pairing-app/internal/usecase/match"
	"github.com/labstack/echo"
)

func InitV1Routes(
	e *echo.Echo,
	users userRepo.IUserRepo,
	authCase authUseCase.IAuthUseCase,
	matchCase match.IMatchUseCase,
	chatCase chat.IChatUseCase,
) {
	v1 := e.Group("/v1")

	v1.POST("/auth/sign-up", func(c echo.Context) error {
		return routesV1Auth.SignUpHandler(c, authCase)
	})
	v1.POST("/auth/sign-in", func(c echo.Context) error {
		return routesV1Auth.SignInHandler(c, authCase)
	})

	authed := v1.Group("", middleware.JWTMiddleware(users))

	authed.GET("/match/candidates", func(c echo.Context) error {
		return routesV1Match.GetCandidatesHandler(c, matchCase)
	})
	authed.POST("/match/swipe/:id", func(c echo.Context) error {
		return routesV1Match.SwipeHandler(c, matchCase)
	})
	authed.GET("/match/pairings", func(c echo.Context) error {
		return routesV1Match.GetPairingsHandler(c, matchCase)
	})
	authed.GET("/match/pairings/:id/profile", func(c echo.Context) error {
		return routesV1Match.GetPairingProfileHandler(c, matchCase)
	})

	authed.GET("/chat/:pairingID/messages", func(c echo.Context) error {
		return routesV1Chat.ListMessagesHandler(c, chatCase)
	})
	authed.POST("/chat/:pairingID/messages", func(c echo.Context) error {
		return routesV1Chat.SendMessageHandler(c, chatCase)
	})
	authed.POST("/chat/:pairingID/read", func(c echo.Context) error {
		return routesV1Chat.MarkReadHandler(c, chatCase)
	})
}
