package handler

import (
	"github.com/gin-gonic/gin"

	"miklean/internal/service"
)

// TaskHandler exposes scheduled jobs to an external scheduler.
type TaskHandler struct {
	reminderService service.ReminderService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(reminderService service.ReminderService) *TaskHandler {
	return &TaskHandler{reminderService: reminderService}
}

// SendReminders handles POST /api/v1/tasks/reminders
// @Summary Send day-ahead visit reminders
// @Description Texts every client with a visit tomorrow that has not been reminded yet
// @Tags tasks
// @Produce json
// @Param X-Cron-Secret header string true "Shared scheduler secret"
// @Success 200 {object} Response{data=service.ReminderRun}
// @Failure 401 {object} ErrorResponseBody "Invalid secret"
// @Router /tasks/reminders [post]
func (h *TaskHandler) SendReminders(c *gin.Context) {
	run, err := h.reminderService.SendDayAhead(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, run)
}
