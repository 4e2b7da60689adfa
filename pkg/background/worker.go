package background

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"moveit/pkg/logger"
)

// Task - периодическая фоновая задача.
type Task interface {
	// TTL - интервал между запусками.
	TTL() time.Duration

	Do(context.Context) error

	// Info - имя задачи для логов.
	Info() string
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
}

type Worker struct {
	log   workerLogger
	tasks []Task
	wg    sync.WaitGroup
}

// New прогревает задачи: каждая один раз выполняется синхронно, и ошибка или
// паника прогрева возвращается сразу. Затем задачи крутятся по своему TTL до
// отмены ctx.
func New(ctx context.Context, log workerLogger, tasks ...Task) (*Worker, error) {
	worker := &Worker{
		log:   log,
		tasks: tasks,
	}
	if len(tasks) == 0 {
		return worker, nil
	}

	initGroup, initCtx := errgroup.WithContext(ctx)
	for _, task := range tasks {
		initGroup.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					stack := debug.Stack()
					err = fmt.Errorf("init panic: %v", r)
					log.Error("Task panic during init",
						logger.NewField("task", task.Info()),
						logger.NewField("recover", r),
						logger.NewField("stack", string(stack)),
					)
				}
			}()
			log.Info("Initializing",
				logger.NewField("task", task.Info()),
			)
			return task.Do(initCtx)
		})
	}

	err := initGroup.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tasks: %w", err)
	}

	for _, task := range tasks {
		worker.wg.Add(1)
		go func() {
			defer worker.wg.Done()
			worker.runBackgroundTask(ctx, task)
		}()
	}

	return worker, nil
}

// Wait блокируется, пока все задачи не остановятся после отмены ctx.
func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) runBackgroundTask(ctx context.Context, task Task) {
	ttl := task.TTL()
	if ttl <= 0 {
		w.log.Warn("invalid TTL, skipping periodic execution",
			logger.NewField("task", task.Info()),
			logger.NewField("TTL", ttl),
		)
		return
	}
	w.log.Info("Starting periodic execution",
		logger.NewField("task", task.Info()),
		logger.NewField("TTL", ttl),
	)

	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Stopping task (context cancelled)",
				logger.NewField("task", task.Info()),
			)
			return
		case <-ticker.C:
			w.executeTaskSafely(ctx, task)
		}
	}
}

func (w *Worker) executeTaskSafely(ctx context.Context, task Task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Background task panic",
				logger.NewField("task", task.Info()),
				logger.NewField("recover", r),
				logger.NewField("stack", string(debug.Stack())),
			)
		}
	}()

	err := task.Do(ctx)
	if err != nil {
		w.log.Error("Background task failed",
			logger.NewField("task", task.Info()),
			logger.NewField("error", err),
		)
	}
}
