package route

import (
	"github.com/gin-gonic/gin"

	"github.com/RayyanKhan4004/PEMPAK-api/controller"
	"github.com/RayyanKhan4004/PEMPAK-api/database"
	mw "github.com/RayyanKhan4004/PEMPAK-api/middlewares"
	"github.com/RayyanKhan4004/PEMPAK-api/storage"
)

// Register wires every endpoint onto the router with its controller.
func Register(router *gin.Engine, db database.Database, store storage.Store, jwtSecret string) {
	auth := controller.NewAuthController(db, jwtSecret)
	products := controller.NewProductController(db, store)
	blogs := controller.NewBlogController(db, store)
	categories := controller.NewCategoryController(db, store)
	subCategories := controller.NewSubCategoryController(db, store)
	teams := controller.NewTeamController(db, store)
	upload := controller.NewUploadController(store)

	router.GET("/health", controller.Health)
	router.GET("/", controller.Root)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", auth.Register)
	authGroup.POST("/login", auth.Login)
	authGroup.GET("/me", mw.JWT(jwtSecret), auth.Me)

	resource(api.Group("/products"), products.Create, products.List, products.GetByID, products.Update, products.Delete)
	resource(api.Group("/blogs"), blogs.Create, blogs.List, blogs.GetByID, blogs.Update, blogs.Delete)
	resource(api.Group("/categories"), categories.Create, categories.List, categories.GetByID, categories.Update, categories.Delete)
	resource(api.Group("/subcategories"), subCategories.Create, subCategories.List, subCategories.GetByID, subCategories.Update, subCategories.Delete)
	resource(api.Group("/teams"), teams.Create, teams.List, teams.GetByID, teams.Update, teams.Delete)

	api.POST("/upload", upload.Upload)
}

func resource(g *gin.RouterGroup, create, list, getByID, update, remove gin.HandlerFunc) {
	g.POST("", create)
	g.GET("", list)
	g.GET("/:id", getByID)
	g.PUT("/:id", update)
	g.DELETE("/:id", remove)
}
