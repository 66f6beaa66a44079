package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/pun-intended/lending-library/handlers"
	"github.com/pun-intended/lending-library/middlewares"
)

// Register wires all HTTP routes. Every lending route requires a valid
// bearer token; mutations of sets, copies and reference data additionally
// require an admin role.
func Register(e *echo.Echo, jwtSecret string) {
	auth := handlers.NewAuthHandler(jwtSecret)
	book := handlers.NewBookHandler()
	set := handlers.NewSetHandler()
	school := handlers.NewSchoolHandler()
	class := handlers.NewClassHandler()
	std := handlers.NewStudentHandler()
	user := handlers.NewUserHandler()

	authMW := middlewares.RequireAuth(jwtSecret)
	adminMW := middlewares.RequireAdmin()

	// Public
	e.GET("/health", handlers.Health)
	e.POST("/auth/token", auth.Token)

	// Books & lending
	books := e.Group("/books", authMW)
	books.GET("", book.List)
	books.GET("/outstanding", book.Outstanding)
	books.GET("/copies", book.Copies)
	books.POST("/checkout", book.CheckOut)
	books.POST("/checkin", book.CheckIn)
	books.GET("/:id", book.Get)
	books.POST("", book.Create, adminMW)
	books.PATCH("/:id", book.Update, adminMW)
	books.DELETE("/:id", book.Delete, adminMW)

	// Sets
	sets := e.Group("/sets", authMW)
	sets.GET("", set.List)
	sets.POST("/new", set.Create, adminMW)
	sets.PATCH("/:id", set.Patch, adminMW)
	sets.DELETE("/:id", set.Delete, adminMW)

	// Schools
	schools := e.Group("/schools", authMW)
	schools.GET("", school.List)
	schools.GET("/:id", school.Get)
	schools.POST("", school.Create, adminMW)
	schools.PATCH("/:id", school.Patch, adminMW)
	schools.DELETE("/:id", school.Delete, adminMW)

	// Classes
	classes := e.Group("/classes", authMW)
	classes.GET("", class.List, adminMW)
	classes.GET("/:id", class.Get)
	classes.POST("/new", class.Create, adminMW)
	classes.PATCH("/:id", class.Patch, adminMW)
	classes.DELETE("/:id", class.Delete, adminMW)

	// Students
	students := e.Group("/students", authMW)
	students.GET("", std.List, adminMW)
	students.GET("/:id", std.Get)
	students.GET("/:id/unread", std.Unread)
	students.POST("", std.Create, adminMW)
	students.PATCH("/:id", std.Patch, adminMW)
	students.DELETE("/:id", std.Delete, adminMW)

	// Users
	users := e.Group("/users", authMW)
	users.GET("", user.List, adminMW)
	users.GET("/:id", user.Get, middlewares.RequireSelfOrAdmin())
	users.POST("/create", user.Create, adminMW)
	users.PATCH("/:id", user.Patch, middlewares.RequireSelfOrAdmin())
	users.DELETE("/:id", user.Delete, adminMW)
}
