package catalogsync

import (
	"context"
	"net/http"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-cetak/internal/common"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Handler accepts commerce platform events and queues them for the worker.
type Handler struct {
	enqueuer Enqueuer
	validate *validator.Validate
	queue    string
	maxRetry int
	timeout  time.Duration
	logger   zerolog.Logger
}

// HandlerConfig configures Handler.
type HandlerConfig struct {
	Enqueuer Enqueuer
	Validate *validator.Validate
	Queue    string
	MaxRetry int
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		enqueuer: cfg.Enqueuer,
		validate: cfg.Validate,
		queue:    cfg.Queue,
		maxRetry: cfg.MaxRetry,
		timeout:  cfg.Timeout,
		logger:   cfg.Logger,
	}
	if h.validate == nil {
		h.validate = common.NewValidator()
	}
	if h.queue == "" {
		h.queue = "catalog"
	}
	if h.timeout <= 0 {
		h.timeout = time.Minute
	}
	return h
}

type enqueueResponse struct {
	TaskID string `json:"taskId"`
	Type   string `json:"type"`
	Queue  string `json:"queue"`
}

// Events handles POST /api/v1/admin/catalog/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	if h.enqueuer == nil {
		common.WriteError(w, common.Internal("sync queue unavailable", nil))
		return
	}
	var ev Event
	if err := common.DecodeJSON(r, &ev); err != nil {
		common.WriteError(w, err)
		return
	}
	if err := h.validate.Struct(ev); err != nil {
		common.WriteError(w, common.InvalidArgument("invalid catalog event", err).
			WithDetails(fieldErrors(err)))
		return
	}
	task, err := NewTask(ev)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	info, err := h.enqueuer.EnqueueContext(r.Context(), task,
		asynq.Queue(h.queue),
		asynq.MaxRetry(h.maxRetry),
		asynq.Timeout(h.timeout),
	)
	if err != nil {
		h.logger.Error().Err(err).Str("type", task.Type()).Str("product_id", ev.ProductID).Msg("enqueue catalog event")
		common.WriteError(w, common.Internal("could not queue catalog event", err))
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": enqueueResponse{
		TaskID: info.ID,
		Type:   info.Type,
		Queue:  info.Queue,
	}})
}

func fieldErrors(err error) map[string]any {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Namespace()] = fe.Tag()
	}
	return map[string]any{"fields": fields}
}
