package router

import (
	"foodgram-go/internal/api/handler"
	"foodgram-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	followHandler *handler.FollowHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
	recipeHandler *handler.RecipeHandler,
	favoriteHandler *handler.FavoriteHandler,
	cartHandler *handler.CartHandler,
	searchHandler *handler.SearchHandler,
	linkHandler *handler.LinkHandler,
) {
	// 短链接跳转挂在根路径，不在 /api/v1 下
	r.GET("/s/:code", linkHandler.Resolve)

	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", middleware.AuthRequired(), authHandler.Logout)
	}

	// --- 用户与关注模块 ---
	users := v1.Group("/users")
	{
		users.GET("", middleware.OptionalAuth(), userHandler.ListUsers)
		users.GET("/:user_id", middleware.OptionalAuth(), userHandler.GetUser)

		usersAuth := users.Group("", middleware.AuthRequired())
		{
			usersAuth.GET("/me", userHandler.GetMe)
			usersAuth.PUT("/me/avatar", userHandler.SetAvatar)
			usersAuth.DELETE("/me/avatar", userHandler.DeleteAvatar)
			usersAuth.POST("/set_password", authHandler.SetPassword)

			usersAuth.GET("/subscriptions", followHandler.Subscriptions)
			usersAuth.POST("/:user_id/subscribe", followHandler.Follow)
			usersAuth.DELETE("/:user_id/subscribe", followHandler.Unfollow)
		}
	}

	// --- 标签模块（公开） ---
	tags := v1.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.GET("/:tag_id", tagHandler.Get)
	}

	// --- 食材模块（公开） ---
	ingredients := v1.Group("/ingredients")
	{
		ingredients.GET("", ingredientHandler.List)
		ingredients.GET("/:ingredient_id", ingredientHandler.Get)
	}

	// --- 菜谱模块 ---
	recipes := v1.Group("/recipes")
	{
		// 公开接口（登录状态下附带查看者标记）
		recipes.GET("", middleware.OptionalAuth(), recipeHandler.List)
		recipes.GET("/:recipe_id", middleware.OptionalAuth(), recipeHandler.Get)
		recipes.GET("/:recipe_id/get-link", recipeHandler.GetLink)

		recipesAuth := recipes.Group("", middleware.AuthRequired())
		{
			recipesAuth.POST("", recipeHandler.Create)
			recipesAuth.PATCH("/:recipe_id", recipeHandler.Update)
			recipesAuth.DELETE("/:recipe_id", recipeHandler.Delete)

			recipesAuth.GET("/download_shopping_cart", cartHandler.DownloadShoppingList)

			recipesAuth.POST("/:recipe_id/favorite", favoriteHandler.Add)
			recipesAuth.DELETE("/:recipe_id/favorite", favoriteHandler.Remove)
			recipesAuth.POST("/:recipe_id/shopping_cart", cartHandler.Add)
			recipesAuth.DELETE("/:recipe_id/shopping_cart", cartHandler.Remove)
		}
	}

	// --- 搜索模块 ---
	search := v1.Group("/search")
	{
		search.GET("/recipes", searchHandler.SearchRecipes)
	}
}
