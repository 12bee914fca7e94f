package httpapi

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maurice2k/shardqueue"
	"github.com/maurice2k/shardqueue/internal/apperrors"
)

// TaskHandler implements the controller layer for the task submission
// surface: it validates requests, submits work to a shardqueue.Backend
// (the native Pool or one of the alternative adapters), and translates
// the result (or timeout) into an HTTP response. Depending on the
// Backend interface rather than the concrete Pool type is what lets
// POOL_BACKEND swap implementations without touching this package.
type TaskHandler struct {
	backend      shardqueue.Backend
	backendName  string
	shuttingDown *atomic.Bool
}

// NewTaskHandler constructs a TaskHandler backed by backend. shuttingDown
// is flipped by the caller once shutdown begins, so Health can report
// unready without this package reaching into queue internals.
func NewTaskHandler(backend shardqueue.Backend, backendName string, shuttingDown *atomic.Bool) *TaskHandler {
	return &TaskHandler{backend: backend, backendName: backendName, shuttingDown: shuttingDown}
}

type taskOutcome struct {
	checksum string
	err      error
}

// CreateTask handles POST /api/v1/tasks.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apperrors.ToResponse(apperrors.ErrInvalidJSON.WithCause(err)))
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, apperrors.ToResponse(apperrors.ErrValidationFailed.WithCause(err)))
		return
	}

	resultCh := make(chan taskOutcome, 1)
	payload := req.Payload
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				applogErrorf("task panicked: %v", r)
				resultCh <- taskOutcome{err: apperrors.ErrInternalError}
			}
		}()
		resultCh <- taskOutcome{checksum: simulateWork(payload)}
	}

	if err := h.backend.Submit(task); err != nil {
		c.JSON(http.StatusServiceUnavailable, apperrors.ToResponse(apperrors.ErrQueueShutdown.WithCause(err)))
		return
	}

	select {
	case res := <-resultCh:
		if res.err != nil {
			c.JSON(http.StatusInternalServerError, apperrors.ToResponse(apperrors.ErrInternalError))
			return
		}
		c.JSON(http.StatusOK, TaskResponse{Checksum: res.checksum})
	case <-time.After(time.Duration(req.TimeoutMs) * time.Millisecond):
		c.JSON(http.StatusRequestTimeout, apperrors.ToResponse(apperrors.ErrSubmissionTimeout))
	}
}

// Stats handles GET /api/v1/stats.
func (h *TaskHandler) Stats(c *gin.Context) {
	s := h.backend.Stats()
	c.JSON(http.StatusOK, StatsResponse{
		Backend:        h.backendName,
		SpawnedWorkers: s.SpawnedWorkers,
		QueueLen:       s.QueueLen,
	})
}

// Health handles GET /health. It reports unready once shutdown has
// begun.
func (h *TaskHandler) Health(c *gin.Context) {
	if h.shuttingDown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// simulateWork stands in for the blocking task body the queue itself
// treats as opaque: it hashes the payload, then re-hashes the digest
// (len(payload) % 16) + 1 times, so the payload length tunes the amount of
// CPU-bound work.
func simulateWork(payload string) string {
	sum := sha256.Sum256([]byte(payload))
	iterations := len(payload)%16 + 1
	for i := 0; i < iterations; i++ {
		sum = sha256.Sum256(sum[:])
	}
	return hex.EncodeToString(sum[:])
}
