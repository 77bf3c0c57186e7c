package worker

import (
	"time"

	"blogcore/pkg/logger"

	"go.uber.org/zap"
)

// MirrorTask carries an absolute counter value to copy onto the
// denormalized post mirror. Absolute values make retries idempotent.
type MirrorTask struct {
	ContentID string
	Field     string // "likes_count" or "comments_count"
	Value     int64
	Retry     int
}

// MirrorStore applies a mirror write. Content IDs that name external or
// missing content are a no-op, not an error.
type MirrorStore interface {
	SyncCounter(contentID, field string, value int64) error
}

// MirrorPool is a buffered write-behind pool for post counter mirrors.
// Mirror writes are best-effort: the ledger is authoritative and an
// offline recount corrects drift.
type MirrorPool struct {
	TaskQueue  chan MirrorTask
	RetryQueue chan MirrorTask
	Store      MirrorStore
	WorkerNum  int
	MaxRetry   int
}

// NewMirrorPool builds a pool over the given store.
func NewMirrorPool(store MirrorStore, workerNum int, bufferSize int) *MirrorPool {
	return &MirrorPool{
		TaskQueue:  make(chan MirrorTask, bufferSize),
		RetryQueue: make(chan MirrorTask, bufferSize/2),
		Store:      store,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

// Start launches the workers and the retry loop.
func (p *MirrorPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	if logger.Log != nil {
		logger.Log.Info("mirror pool started", zap.Int("workers", p.WorkerNum))
	}
}

func (p *MirrorPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.Store.SyncCounter(task.ContentID, task.Field, task.Value); err != nil {
			if logger.Log != nil {
				logger.Log.Warn("mirror sync failed",
					zap.Int("worker", id),
					zap.String("content_id", task.ContentID),
					zap.String("field", task.Field),
					zap.Error(err))
			}

			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
				default:
					p.logDropped(task, "retry queue full")
				}
			} else {
				p.logDropped(task, "max retries exceeded")
			}
		}
	}
}

func (p *MirrorPool) retryWorker() {
	for task := range p.RetryQueue {
		// Back off before re-queueing.
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			p.logDropped(task, "main queue full")
		}
	}
}

// AddTask enqueues a mirror write without blocking the request path.
func (p *MirrorPool) AddTask(task MirrorTask) {
	select {
	case p.TaskQueue <- task:
	default:
		p.logDropped(task, "queue full")
	}
}

func (p *MirrorPool) logDropped(task MirrorTask, reason string) {
	// Dropping is acceptable: the recount routine repairs the mirror.
	if logger.Log == nil {
		return
	}
	logger.Log.Warn("mirror task dropped",
		zap.String("reason", reason),
		zap.String("content_id", task.ContentID),
		zap.String("field", task.Field),
		zap.Int64("value", task.Value))
}
