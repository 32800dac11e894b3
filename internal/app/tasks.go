package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/PranavVetkar/Prototype-MarketingAI/internal/api"
	"github.com/PranavVetkar/Prototype-MarketingAI/internal/model"
)

// rowPromptLength is how many prompt characters a task row shows
const rowPromptLength = 30

// TaskInput is what the user submits from the new-task form
type TaskInput struct {
	Prompt    string
	Audience  string
	ImageData string // data URL, empty when no image is attached
}

// GenerationResult is a successful generation
type GenerationResult struct {
	Task    model.Task
	Message string
}

// Row is one entry of the dashboard task list
type Row struct {
	TaskID      string // empty for the informational row
	Title       string
	Subtitle    string
	Badge       string
	Placeholder bool
}

// TaskClient issues generation requests and keeps the most recent task.
// Only one task is ever retained.
type TaskClient struct {
	mu      sync.RWMutex
	current *model.Task
	rows    []Row

	session identityReader
	backend Backend
	logger  *zap.Logger
}

// NewTaskClient creates a task client with an empty slot
func NewTaskClient(session identityReader, backend Backend, logger *zap.Logger) *TaskClient {
	c := &TaskClient{session: session, backend: backend, logger: logger}
	c.Refresh()
	return c
}

// GenerateTask submits in for generation. ctrl is disabled for the whole
// request and restored on every exit path. On success the new task
// replaces the retained one; on failure the retained task is untouched.
func (c *TaskClient) GenerateTask(ctx context.Context, in TaskInput, ctrl Control) (GenerationResult, error) {
	uid, ok := c.session.Identity()
	if !ok {
		return GenerationResult{}, ErrUnauthenticated
	}
	if in.Prompt == "" || in.Audience == "" {
		return GenerationResult{}, &ValidationError{Message: "Please enter both product prompt and audience."}
	}

	if ctrl == nil {
		ctrl = noopControl{}
	}
	ctrl.Disable(GeneratingLabel)
	defer ctrl.Restore()

	req := api.GenerateTaskRequest{
		UID:      string(uid),
		Prompt:   in.Prompt,
		Audience: in.Audience,
	}
	if in.ImageData != "" {
		image := in.ImageData
		req.ImageBase64 = &image
	}

	resp, err := c.backend.GenerateTask(ctx, req)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			reason := apiErr.Reason()
			if reason == "" {
				reason = DefaultGenerationReason
			}
			c.logger.Warn("generation rejected", zap.Int("status", apiErr.StatusCode), zap.String("reason", reason))
			return GenerationResult{}, &GenerationError{Reason: reason, Err: err}
		}
		c.logger.Error("task creation error", zap.Error(err))
		return GenerationResult{}, &GenerationError{Network: true, Err: err}
	}

	task := model.Task{
		ID:             resp.TaskID,
		Prompt:         in.Prompt,
		Audience:       in.Audience,
		ImageReference: in.ImageData,
		Output:         *resp.Output,
	}

	c.mu.Lock()
	c.current = &task
	c.mu.Unlock()
	c.Refresh()

	c.logger.Debug("task generated", zap.String("task_id", task.ID))
	return GenerationResult{Task: task, Message: resp.Message}, nil
}

// CurrentTask returns the retained task, if any
func (c *TaskClient) CurrentTask() (model.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.current == nil {
		return model.Task{}, false
	}
	return *c.current, true
}

// Detail returns the retained task when its ID matches taskID
func (c *TaskClient) Detail(taskID string) (model.Task, bool) {
	task, ok := c.CurrentTask()
	if !ok || task.ID != taskID {
		return model.Task{}, false
	}
	return task, true
}

// Refresh rebuilds the task list from the retained task
func (c *TaskClient) Refresh() {
	rows := []Row{{Title: model.HistoryPlaceholder, Placeholder: true}}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil {
		rows = append(rows, Row{
			TaskID:   c.current.ID,
			Title:    c.current.Summary(rowPromptLength),
			Subtitle: "Latest Generation",
			Badge:    "View",
		})
	}
	c.rows = rows
}

// Rows returns the task list as of the last refresh
func (c *TaskClient) Rows() []Row {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rows := make([]Row, len(c.rows))
	copy(rows, c.rows)
	return rows
}
