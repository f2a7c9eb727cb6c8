package eventloop

const minQueueCapacity = 16

// taskQueue 无界任务队列.
//
// 基于环形缓冲区，容量始终为 2 的幂，满时扩容、稀疏时缩容.
// 非并发安全，由 Loop 的互斥锁保护.
type taskQueue struct {
	buf   []func()
	head  int // 第一个任务的索引
	tail  int // 最后一个任务的下一个位置
	count int
}

func newTaskQueue() *taskQueue {
	return &taskQueue{buf: make([]func(), minQueueCapacity)}
}

// push 在队尾追加任务.
func (q *taskQueue) push(task func()) {
	if q.count == len(q.buf) {
		q.resize(len(q.buf) << 1)
	}
	q.buf[q.tail] = task
	q.tail = (q.tail + 1) & (len(q.buf) - 1)
	q.count++
}

// pop 取出队首任务.
func (q *taskQueue) pop() (func(), bool) {
	if q.count == 0 {
		return nil, false
	}
	task := q.buf[q.head]
	q.buf[q.head] = nil
	q.head = (q.head + 1) & (len(q.buf) - 1)
	q.count--
	if len(q.buf) > minQueueCapacity && q.count <= len(q.buf)/4 {
		q.resize(len(q.buf) >> 1)
	}
	return task, true
}

func (q *taskQueue) len() int {
	return q.count
}

func (q *taskQueue) resize(size int) {
	buf := make([]func(), size)
	if q.head < q.tail {
		copy(buf, q.buf[q.head:q.tail])
	} else if q.count > 0 {
		n := copy(buf, q.buf[q.head:])
		copy(buf[n:], q.buf[:q.tail])
	}
	q.buf = buf
	q.head = 0
	q.tail = q.count
}
