package recce

import (
	"strings"

	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

type handlers struct {
	deps *services.Deps
}

func SetupRecceRoutes(app *fiber.App, deps *services.Deps) {
	h := &handlers{deps: deps}
	recce := app.Group("/recce")
	recce.Use(auth.AuthMiddleware(deps))

	recce.Get("/", h.ReccePage)
	recce.Post("/upload", h.UploadAPI)
}

func (h *handlers) ReccePage(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	uploads, err := h.deps.Activity.RecceUploads(c.UserContext(), user.ID)
	if err != nil {
		h.deps.Logger.Error("list recce uploads", "user_id", user.ID, "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.JSON(fiber.Map{"uploads": uploads})
	}
	return c.Render("recce/index", fiber.Map{
		"Title":       "Recce - V-app",
		"CurrentPage": "recce",
		"User":        user,
		"Uploads":     uploads,
		"Saved":       c.Query("ok") == "1",
	})
}

func (h *handlers) UploadAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	file, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	now := h.deps.Clock()
	diskPath, ref, err := h.deps.Uploads.Recce(user.ID, now, file.Filename)
	if err != nil {
		return err
	}
	if err := c.SaveFile(file, diskPath); err != nil {
		h.deps.Logger.Error("save recce file", "user_id", user.ID, "path", diskPath, "error", err)
		return err
	}

	upload := &models.RecceUpload{
		UserID:       user.ID,
		UploadedAt:   now,
		Project:      strings.TrimSpace(c.FormValue("project")),
		Notes:        strings.TrimSpace(c.FormValue("notes")),
		FileRef:      ref,
		OriginalName: file.Filename,
	}
	if err := h.deps.Activity.RecordRecce(c.UserContext(), upload); err != nil {
		h.deps.Logger.Error("record recce upload", "user_id", user.ID, "error", err)
		return err
	}

	if auth.WantsJSON(c) {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"upload":  upload,
			"points":  services.PointsRecce,
		})
	}
	return c.Redirect("/recce?ok=1")
}
