package worker

import (
	"post_service/pkg/logger"
	"post_service/pkg/metrics"

	"go.uber.org/zap"
)

// Task 一个 best-effort 副作用任务（推送通知、媒体清理等）。
// 任务失败只记录日志，不重试：副作用失败不能影响主操作的结果。
type Task struct {
	Kind string
	Run  func() error
}

// Dispatcher 副作用任务分发器
type Dispatcher struct {
	queue     chan Task
	workerNum int
}

func NewDispatcher(workerNum, bufferSize int) *Dispatcher {
	return &Dispatcher{
		queue:     make(chan Task, bufferSize),
		workerNum: workerNum,
	}
}

func (d *Dispatcher) Start() {
	for i := 0; i < d.workerNum; i++ {
		go d.worker(i)
	}
	logger.Log.Info("side-effect dispatcher started", zap.Int("workers", d.workerNum))
}

func (d *Dispatcher) worker(id int) {
	for task := range d.queue {
		if err := task.Run(); err != nil {
			logger.Log.Warn("side-effect task failed",
				zap.Int("worker", id),
				zap.String("kind", task.Kind),
				zap.Error(err),
			)
		}
	}
}

// Submit 提交任务。队列满时直接丢弃并记录，绝不阻塞调用方。
func (d *Dispatcher) Submit(task Task) {
	select {
	case d.queue <- task:
	default:
		metrics.GetGlobalCollector().RecordSideEffectDropped(task.Kind)
		logger.Log.Warn("side-effect queue full, task dropped", zap.String("kind", task.Kind))
	}
}

// Stop 关闭队列，已入队任务会被处理完
func (d *Dispatcher) Stop() {
	close(d.queue)
}
