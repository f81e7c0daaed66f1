package handlers

import (
	"github.com/gofiber/fiber/v2"

	"racquet-stats-system/services"
)

// SetupUserRoutes registers the create-or-login endpoint.
func SetupUserRoutes(app *fiber.App, userService *services.UserService) {
	app.Post("/users", userService.Login)
}

func SetupPlayerRoutes(app *fiber.App, playerService *services.PlayerService) {
	app.Get("/players", playerService.ListPlayers)
	app.Post("/players", playerService.CreatePlayer)
	app.Put("/players/:id", playerService.UpdatePlayer)
	app.Delete("/players/:id", playerService.DeletePlayer)
	app.Post("/players/:id/avatar", playerService.UploadAvatar)
}

func SetupMatchRoutes(app *fiber.App, matchService *services.MatchService) {
	app.Get("/matches", matchService.ListMatches)
	app.Post("/matches", matchService.CreateMatch)
	app.Delete("/matches/:id", matchService.DeleteMatch)
}
