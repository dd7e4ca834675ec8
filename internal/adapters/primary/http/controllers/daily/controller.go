package dailyController

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin/games/daily-guess/internal/adapters/primary/http/controllers"
	"github.com/admin/games/daily-guess/internal/domain"
	dailyService "github.com/admin/games/daily-guess/internal/usecases/daily"
)

type Controller struct {
	DailyService *dailyService.Service
	Log          *slog.Logger
}

func New(
	dailyService *dailyService.Service,
	log *slog.Logger,
) *Controller {
	return &Controller{
		DailyService: dailyService,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/daily", c.getDaily)
		api.POST("/guess", c.submitGuess)
	}
}

// getDaily картинка дня
func (c *Controller) getDaily(ctx *gin.Context) {
	challenge, err := c.DailyService.GetDailyImage(ctx.Request.Context())
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toDailyResponse(challenge))
}

// submitGuess проверка ответа игрока
func (c *Controller) submitGuess(ctx *gin.Context) {
	var req GuessRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind guess request", "error", err)
		ctx.JSON(http.StatusBadRequest, controllers.ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := c.DailyService.SubmitGuess(ctx.Request.Context(), req.Guess)
	if err != nil {
		c.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

func (c *Controller) respondError(ctx *gin.Context, err error) {
	status, body := controllers.StatusFor(err)
	if !domain.IsBusinessError(err) {
		c.Log.Error("daily request failed", "error", err, "path", ctx.Request.URL.Path)
	}
	ctx.JSON(status, body)
}
