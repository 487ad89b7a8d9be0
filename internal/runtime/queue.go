package runtime

type TaskQueue struct {
	tasks []func()
}

func NewTaskQueue() *TaskQueue {
	return &TaskQueue{
		tasks: make([]func(), 0),
	}
}

func (q *TaskQueue) Enqueue(fn func()) {
	q.tasks = append(q.tasks, fn)
}

func (q *TaskQueue) Len() int {
	return len(q.tasks)
}

// Take hands the queued tasks over to the caller and leaves the queue empty,
// so tasks enqueued while the returned ones run land in a fresh slice.
func (q *TaskQueue) Take() []func() {
	tasks := q.tasks
	q.tasks = make([]func(), 0)
	return tasks
}

func (q *TaskQueue) Clear() {
	q.tasks = q.tasks[:0]
}
