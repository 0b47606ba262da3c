package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"recipe-api/constants"
	"recipe-api/dto"
	"recipe-api/repositories"
	"recipe-api/services"
)

type IRecipeController interface {
	FindAll(ctx *gin.Context)
	FindById(ctx *gin.Context)
	Create(ctx *gin.Context)
	Replace(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
}

type RecipeController struct {
	service services.IRecipeService
	logger  zerolog.Logger
}

func NewRecipeController(service services.IRecipeService, logger zerolog.Logger) IRecipeController {
	return &RecipeController{service: service, logger: logger}
}

// FindAll lists the caller's recipes, newest first, in the terse shape.
func (c *RecipeController) FindAll(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	tagIDs, err := parseIDList(ctx.Query("tags"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"tags": []string{constants.ErrInvalidID}})
		return
	}
	ingredientIDs, err := parseIDList(ctx.Query("ingredients"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"ingredients": []string{constants.ErrInvalidID}})
		return
	}

	recipes, err := c.service.FindAll(ctx.Request.Context(), user.ID, repositories.RecipeFilter{
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
	})
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeResponses(recipes))
}

// FindById returns one recipe with nested tags and ingredients.
func (c *RecipeController) FindById(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	recipeID, ok := parseID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
		return
	}

	recipe, err := c.service.FindById(ctx.Request.Context(), recipeID, user.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeDetailResponse(recipe))
}

func (c *RecipeController) Create(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var input dto.CreateRecipeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	newRecipe, err := c.service.Create(ctx.Request.Context(), input, user.ID)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewRecipeResponse(newRecipe))
}

func (c *RecipeController) Replace(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	recipeID, ok := parseID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
		return
	}

	var input dto.CreateRecipeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	updatedRecipe, err := c.service.Replace(ctx.Request.Context(), recipeID, user.ID, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeResponse(updatedRecipe))
}

func (c *RecipeController) Update(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	recipeID, ok := parseID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
		return
	}

	var input dto.UpdateRecipeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondBindError(ctx, err)
		return
	}

	updatedRecipe, err := c.service.Update(ctx.Request.Context(), recipeID, user.ID, input)
	if err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewRecipeResponse(updatedRecipe))
}

func (c *RecipeController) Delete(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	recipeID, ok := parseID(ctx)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), recipeID, user.ID); err != nil {
		respondError(ctx, c.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// parseIDList reads a comma separated id list such as "1,2,3".
func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
