package api

import (
	"encoding/json"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// LoginRequest is the body of POST /api/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /api/login
type LoginResponse struct {
	Success bool   `json:"success"`
	UID     string `json:"uid,omitempty"`
	Message string `json:"message,omitempty"`
	Detail  Detail `json:"detail,omitempty"`
}

// GenerateTaskRequest is the body of POST /api/generate_task.
// ImageBase64 is a data URL; nil is sent as JSON null.
type GenerateTaskRequest struct {
	UID         string  `json:"uid"`
	Prompt      string  `json:"prompt"`
	Audience    string  `json:"audience"`
	ImageBase64 *string `json:"image_base64"`
}

// GenerateTaskResponse is returned by POST /api/generate_task
type GenerateTaskResponse struct {
	Success bool          `json:"success"`
	TaskID  string        `json:"task_id,omitempty"`
	Output  *model.Output `json:"output,omitempty"`
	Message string        `json:"message,omitempty"`
	Detail  Detail        `json:"detail,omitempty"`
}

// TasksResponse is returned by GET /api/tasks/{uid}
type TasksResponse struct {
	Success bool              `json:"success"`
	Tasks   []json.RawMessage `json:"tasks"`
	Detail  Detail            `json:"detail,omitempty"`
}

// ErrorResponse is the body of every non-2xx server reply
type ErrorResponse struct {
	Detail Detail `json:"detail"`
}

// Detail is the server's error detail. Most endpoints send a string, but
// request validation failures send a structured value; those are kept as
// their raw JSON text.
type Detail string

func (d *Detail) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*d = Detail(s)
		return nil
	}
	if string(data) == "null" {
		*d = ""
		return nil
	}
	*d = Detail(data)
	return nil
}
