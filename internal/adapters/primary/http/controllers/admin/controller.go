package admin

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/admin/games/daily-guess/internal/adapters/primary/http/controllers"
	"github.com/admin/games/daily-guess/internal/adapters/primary/http/middlewares"
	"github.com/admin/games/daily-guess/internal/domain"
	dailyService "github.com/admin/games/daily-guess/internal/usecases/daily"
)

// Config настройки админских маршрутов
type Config struct {
	Token       string // пустой - без проверки X-Admin-Token
	DebugRoutes bool   // регистрировать /api/debug/*
}

type Controller struct {
	DailyService *dailyService.Service
	Cfg          Config
	Log          *slog.Logger
}

func New(
	dailyService *dailyService.Service,
	cfg Config,
	log *slog.Logger,
) *Controller {
	return &Controller{
		DailyService: dailyService,
		Cfg:          cfg,
		Log:          log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api", middlewares.AdminToken(c.Cfg.Token, c.Log))
	{
		api.POST("/images", c.addImage)
		if c.Cfg.DebugRoutes {
			api.POST("/debug/reset-daily", c.resetDaily)
		}
	}
}

// AddImageResponse ответ на сидирование
type AddImageResponse struct {
	ID string `json:"id"`
}

// addImage сидирует картинку в каталог
func (c *Controller) addImage(ctx *gin.Context) {
	var req domain.ImageInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.Log.Warn("failed to bind image request", "error", err)
		ctx.JSON(http.StatusBadRequest, controllers.ErrorResponse{Error: "invalid request body"})
		return
	}

	id, err := c.DailyService.AddImage(ctx.Request.Context(), req)
	if err != nil {
		status, body := controllers.StatusFor(err)
		if !domain.IsBusinessError(err) {
			c.Log.Error("failed to add image", "error", err)
		}
		ctx.JSON(status, body)
		return
	}

	ctx.JSON(http.StatusOK, AddImageResponse{ID: id})
}

// resetDaily сбрасывает выбор текущего дня (только для отладки)
func (c *Controller) resetDaily(ctx *gin.Context) {
	day, err := c.DailyService.ResetDaily(ctx.Request.Context())
	if err != nil {
		c.Log.Error("failed to reset daily pick", "error", err)
		status, body := controllers.StatusFor(err)
		ctx.JSON(status, body)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"reset":   true,
		"dateUTC": day.String(),
	})
}
