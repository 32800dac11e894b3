package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/generator"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/media"
)

const (
	taskIDPrefix     = "DEMO_TASK_"
	taskGenerated    = "Task generated successfully (not saved to DB)."
	unauthorized     = "Unauthorized access."
	generationFailed = "AI generation failed: "
	invalidStructure = "AI generated invalid content structure."
)

// TaskHandler generates marketing content. Nothing is persisted.
type TaskHandler struct {
	gen    generator.Generator
	uid    string
	logger *zap.Logger
}

func NewTaskHandler(gen generator.Generator, uid string, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{gen: gen, uid: uid, logger: logger}
}

// Generate handles POST /api/generate_task
func (h *TaskHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateTaskRequest
	if err := decodeJSON(w, r, &req, "uid", "prompt", "audience"); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if req.UID != h.uid {
		writeError(w, http.StatusForbidden, unauthorized)
		return
	}

	genReq := generator.Request{Prompt: req.Prompt, Audience: req.Audience}
	if req.ImageBase64 != nil && *req.ImageBase64 != "" {
		mimeType, data, err := media.ParseDataURL(*req.ImageBase64)
		if err != nil {
			h.logger.Warn("ignoring unreadable image", zap.Error(err))
		} else {
			genReq.Image = &generator.Image{MIMEType: mimeType, Data: data, DataURL: *req.ImageBase64}
		}
	}

	out, err := h.gen.Generate(r.Context(), genReq)
	if errors.Is(err, generator.ErrInvalidOutput) {
		h.logger.Error("generator returned invalid output", zap.Error(err))
		writeError(w, http.StatusInternalServerError, invalidStructure)
		return
	}
	if err != nil {
		h.logger.Error("generation failed", zap.String("generator", h.gen.Name()), zap.Error(err))
		writeError(w, http.StatusInternalServerError, generationFailed+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, api.GenerateTaskResponse{
		Success: true,
		Message: taskGenerated,
		TaskID:  newTaskID(),
		Output:  &out,
	})
}

// List handles GET /api/tasks/{uid}. History is not kept in demo mode.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.TasksResponse{Success: true, Tasks: []json.RawMessage{}})
}

func newTaskID() string {
	return taskIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
