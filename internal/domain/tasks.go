package domain

import "context"

// Task is a unit of out-of-band work scheduled after a mutation committed.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// TaskQueue accepts post-commit tasks. Enqueue never blocks; it returns false
// when the task was dropped.
type TaskQueue interface {
	Enqueue(task Task) bool
}

// TxManager runs fn in a store transaction. Repositories called with the ctx
// passed to fn take part in it. Write conflicts are retried by the store up to
// its bound; exhaustion is reported as ErrRetryable.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
