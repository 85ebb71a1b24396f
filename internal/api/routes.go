package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	users := api.Group("/users", handler.AuthRequired)
	users.Get("/profile", handler.Me)
	users.Put("/profile", handler.UpdateProfile)
	users.Post("/change-password", handler.ChangePassword)
	users.Delete("/account", handler.DeleteAccount)

	period := api.Group("/period", handler.AuthRequired)
	period.Get("/history", handler.GetPeriodHistory)
	period.Post("/entries", handler.AddPeriodEntry)
	period.Get("/predictions", handler.GetPeriodPredictions)
	period.Get("/cycles/current", handler.GetCurrentCycle)
	period.Post("/cycles/start", handler.StartCycle)
	period.Post("/cycles/:id/end", handler.EndCycle)
	period.Get("/analytics", handler.GetPeriodAnalytics)

	medicines := api.Group("/medicines", handler.AuthRequired)
	medicines.Get("", handler.GetMedicines)
	medicines.Post("", handler.CreateMedicine)
	medicines.Get("/reminders", handler.GetMedicineReminders)
	medicines.Get("/analytics", handler.GetMedicineAnalytics)
	medicines.Get("/:id", handler.GetMedicine)
	medicines.Put("/:id", handler.UpdateMedicine)
	medicines.Delete("/:id", handler.DeleteMedicine)
	medicines.Post("/:id/taken", handler.MarkMedicineTaken)

	chat := api.Group("/chat", handler.AuthRequired)
	chat.Get("/sessions", handler.GetChatSessions)
	chat.Post("/sessions", handler.CreateChatSession)
	chat.Get("/sessions/:id", handler.GetChatSession)
	chat.Delete("/sessions/:id", handler.DeleteChatSession)
	chat.Post("/sessions/:id/messages", handler.SendChatMessage)
	chat.Post("/analyze-symptoms", handler.AnalyzeSymptoms)

	plans := api.Group("/health-plans", handler.AuthRequired)
	plans.Get("", handler.GetHealthPlans)
	plans.Post("", handler.CreateHealthPlan)
	plans.Post("/generate", handler.GenerateHealthPlan)
	plans.Get("/analytics", handler.GetHealthPlanAnalytics)
	plans.Get("/:id", handler.GetHealthPlan)
	plans.Put("/:id", handler.UpdateHealthPlan)
	plans.Delete("/:id", handler.DeleteHealthPlan)
	plans.Put("/:id/tasks/:taskId", handler.ToggleHealthPlanTask)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
