// Package router wires repositories, services and controllers into a gin engine.
package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"recipe-api/constants"
	"recipe-api/controllers"
	"recipe-api/middlewares"
	"recipe-api/models"
	"recipe-api/repositories"
	"recipe-api/services"
)

type Options struct {
	DB              *gorm.DB
	TokenRepository repositories.ITokenRepository
	SecretKey       []byte
	TokenTTL        time.Duration
	AllowedOrigins  []string
	Logger          zerolog.Logger
}

// SetupRouter builds the HTTP handler. When opts.TokenRepository is nil the
// revocation list is kept in the main database.
func SetupRouter(opts Options) *gin.Engine {
	controllers.RegisterValidation()
	logger := opts.Logger.With().Str("component", "http").Logger()

	tokenRepository := opts.TokenRepository
	if tokenRepository == nil {
		tokenRepository = repositories.NewTokenRepository(opts.DB)
	}

	userRepository := repositories.NewUserRepository(opts.DB)
	userService := services.NewUserService(userRepository, opts.Logger)
	userController := controllers.NewUserController(userService, logger)
	adminController := controllers.NewAdminController(userService, logger)

	authService := services.NewAuthService(userRepository, tokenRepository, opts.SecretKey, opts.TokenTTL, opts.Logger)
	authController := controllers.NewAuthController(authService, logger)

	tagRepository := repositories.NewTagRepository(opts.DB)
	ingredientRepository := repositories.NewIngredientRepository(opts.DB)
	tagController := controllers.NewAttributeController(services.NewAttributeService[models.Tag](tagRepository), logger)
	ingredientController := controllers.NewAttributeController(services.NewAttributeService[models.Ingredient](ingredientRepository), logger)

	recipeRepository := repositories.NewRecipeRepository(opts.DB)
	recipeService := services.NewRecipeService(recipeRepository, tagRepository, ingredientRepository)
	recipeController := controllers.NewRecipeController(recipeService, logger)

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))
	r.Use(middlewares.Metrics())
	r.Use(corsMiddleware(opts.AllowedOrigins))

	r.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{constants.DetailKey: constants.ErrMethodNotAllowed})
	})
	r.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{constants.DetailKey: constants.ErrNotFound})
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middlewares.AuthMiddleware(authService, logger)

	userRouter := r.Group("/user")
	userRouterWithAuth := r.Group("/user", requireAuth)
	recipeRouter := r.Group("/recipe", requireAuth)
	adminRouter := r.Group("/admin", requireAuth, middlewares.RequireStaff(logger))

	userRouter.POST("/create", userController.Create)
	userRouter.POST("/token", authController.Token)
	userRouterWithAuth.POST("/logout", authController.Logout)
	userRouterWithAuth.GET("/me", userController.Me)
	userRouterWithAuth.PATCH("/me", userController.UpdateMe)

	recipeRouter.GET("/tags", tagController.FindAll)
	recipeRouter.POST("/tags", tagController.Create)
	recipeRouter.GET("/ingredients", ingredientController.FindAll)
	recipeRouter.POST("/ingredients", ingredientController.Create)
	recipeRouter.GET("/recipes", recipeController.FindAll)
	recipeRouter.POST("/recipes", recipeController.Create)
	recipeRouter.GET("/recipes/:id", recipeController.FindById)
	recipeRouter.PUT("/recipes/:id", recipeController.Replace)
	recipeRouter.PATCH("/recipes/:id", recipeController.Update)
	recipeRouter.DELETE("/recipes/:id", recipeController.Delete)

	adminRouter.GET("/users", adminController.FindAllUsers)
	adminRouter.GET("/users/:id", adminController.FindUserById)
	adminRouter.DELETE("/users/:id", adminController.DeleteUser)

	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AddAllowHeaders("Authorization")
	cfg.AddExposeHeaders("X-Request-ID")
	return cors.New(cfg)
}
