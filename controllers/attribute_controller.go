package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/dto"
	"recipe-api/models"
	"recipe-api/services"
)

type IAttributeController interface {
	FindAll(ctx *gin.Context)
	Create(ctx *gin.Context)
}

// AttributeController serves tags and ingredients.
type AttributeController[T models.Attribute] struct {
	service services.IAttributeService[T]
	logger  zerolog.Logger
}

func NewAttributeController[T models.Attribute](service services.IAttributeService[T], logger zerolog.Logger) IAttributeController {
	return &AttributeController[T]{service: service, logger: logger}
}

func (c *AttributeController[T]) FindAll(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	items, err := c.service.FindAll(ctx.Request.Context(), user.ID, queryFlag(ctx, "assigned_only"))
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAttributeResponses(items))
}

func (c *AttributeController[T]) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.CreateAttributeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	item, err := c.service.Create(ctx.Request.Context(), input, user.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAttributeResponse(*item))
}

func queryFlag(ctx *gin.Context, name string) bool {
	switch ctx.Query(name) {
	case "1", "true", "True":
		return true
	default:
		return false
	}
}
