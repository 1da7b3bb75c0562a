package attendance

import (
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/RehanWaris/voiceworx-vapp/app/database"
	"github.com/RehanWaris/voiceworx-vapp/app/models"
	"github.com/RehanWaris/voiceworx-vapp/app/routes/auth"
	"github.com/RehanWaris/voiceworx-vapp/app/services"
	"github.com/gofiber/fiber/v2"
)

// markForm is the validated multipart body of a check-in or check-out.
type markForm struct {
	file   *multipart.FileHeader
	lat    *float64
	lng    *float64
	remark string
}

func parseMarkForm(c *fiber.Ctx) (*markForm, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "photo file is required")
	}
	lat, err := optionalFloat(c.FormValue("lat"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
	}
	lng, err := optionalFloat(c.FormValue("lng"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "lng must be a number")
	}
	return &markForm{
		file:   file,
		lat:    lat,
		lng:    lng,
		remark: strings.TrimSpace(c.FormValue("remark")),
	}, nil
}

func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (h *handlers) CheckInAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	form, err := parseMarkForm(c)
	if err != nil {
		return err
	}

	now := h.deps.Clock()
	photo, err := h.savePhoto(c, user.ID, services.DateKey(now), models.DirectionIn, form.file)
	if err != nil {
		return err
	}

	result, err := h.deps.Attendance.CheckIn(c.UserContext(), user.ID, now, services.Mark{
		Lat:    form.lat,
		Lng:    form.lng,
		Photo:  photo,
		Remark: form.remark,
	})
	if err != nil {
		h.deps.Logger.Error("check in", "user_id", user.ID, "error", err)
		return err
	}
	h.deps.Logger.Info("checked in", "user_id", user.ID, "status", result.Status)

	if auth.WantsJSON(c) {
		return c.JSON(checkResponse(result))
	}
	return c.Redirect("/attendance?in=1")
}

func (h *handlers) CheckOutAPI(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	form, err := parseMarkForm(c)
	if err != nil {
		return err
	}

	now := h.deps.Clock()
	ctx := c.UserContext()
	checkedIn, err := h.deps.Attendance.HasCheckedIn(ctx, user.ID, now)
	if err != nil {
		return err
	}
	if !checkedIn {
		return noCheckIn(c)
	}

	photo, err := h.savePhoto(c, user.ID, services.DateKey(now), models.DirectionOut, form.file)
	if err != nil {
		return err
	}

	result, err := h.deps.Attendance.CheckOut(ctx, user.ID, now, services.Mark{
		Lat:    form.lat,
		Lng:    form.lng,
		Photo:  photo,
		Remark: form.remark,
	})
	if err != nil {
		if errors.Is(err, database.ErrNoCheckIn) {
			return noCheckIn(c)
		}
		h.deps.Logger.Error("check out", "user_id", user.ID, "error", err)
		return err
	}
	h.deps.Logger.Info("checked out", "user_id", user.ID)

	if auth.WantsJSON(c) {
		return c.JSON(checkResponse(result))
	}
	return c.Redirect("/attendance?out=1")
}

func (h *handlers) savePhoto(c *fiber.Ctx, userID, date string, dir models.Direction, file *multipart.FileHeader) (string, error) {
	diskPath, ref, err := h.deps.Uploads.Attendance(userID, date, dir, file.Filename)
	if err != nil {
		return "", err
	}
	if err := c.SaveFile(file, diskPath); err != nil {
		h.deps.Logger.Error("save attendance photo", "user_id", userID, "path", diskPath, "error", err)
		return "", err
	}
	return ref, nil
}

func noCheckIn(c *fiber.Ctx) error {
	if auth.WantsJSON(c) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "check in before checking out",
			"code":    fiber.StatusConflict,
		})
	}
	return c.Redirect("/attendance?e=nocheckin")
}

func checkResponse(result *services.CheckResult) fiber.Map {
	resp := fiber.Map{
		"success":       true,
		"status":        result.Status,
		"points":        result.Points,
		"total":         result.Total,
		"record":        result.Record,
		"working_hours": nil,
	}
	if result.Record != nil {
		resp["working_hours"] = services.WorkingHours(result.Record.CheckInAt, result.Record.CheckOutAt)
	}
	return resp
}
