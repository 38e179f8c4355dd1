package catalogsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	queue := "default"
	for _, o := range opts {
		if o.Type() == asynq.QueueOpt {
			queue = o.Value().(string)
		}
	}
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type(), Queue: queue}, nil
}

func postEvent(t *testing.T, h *Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/events", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Events(rec, req)
	return rec
}

func TestEventsEnqueuesTask(t *testing.T) {
	enq := &fakeEnqueuer{}
	h := NewHandler(HandlerConfig{Enqueuer: enq, Queue: "catalog", MaxRetry: 5, Logger: zerolog.Nop()})

	rec := postEvent(t, h, coverVariant())
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.JSONEq(t, `{"data":{"taskId":"task-1","type":"catalog:variant.upserted","queue":"catalog"}}`, rec.Body.String())

	require.Len(t, enq.tasks, 1)
	var ev Event
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &ev))
	require.Equal(t, "1107404", ev.SKU)
}

func TestEventsValidates(t *testing.T) {
	enq := &fakeEnqueuer{}
	h := NewHandler(HandlerConfig{Enqueuer: enq, Logger: zerolog.Nop()})

	rec := postEvent(t, h, Event{Type: "variant.renamed", ProductID: "p"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postEvent(t, h, Event{Type: EventVariantUpserted, ProductID: "p", VariantID: "v"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postEvent(t, h, Event{Type: EventProductDeleted, ProductID: "p"})
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, enq.tasks, 1)
	require.Equal(t, TypeProductDeleted, enq.tasks[0].Type())
}

func TestEventsEnqueueFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{Enqueuer: &fakeEnqueuer{err: errors.New("redis down")}, Logger: zerolog.Nop()})
	rec := postEvent(t, h, coverVariant())
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}
