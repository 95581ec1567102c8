/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package workerpool

import (
	"context"

	liblog "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

func newWorker(id int) *worker {
	w := &worker{
		id:   id,
		sem:  semaphore.NewWeighted(1),
		done: make(chan struct{}),
	}

	// semaphore.Weighted starts with its full weight available to
	// acquire; drain it immediately so the worker parks until the pool
	// actually assigns it a task via Release.
	w.sem.TryAcquire(1)

	return w
}

// run is the worker's body: park on the private semaphore, run whatever
// task was assigned, rejoin the idle list, repeat. A nil task is the
// termination sentinel.
func (w *worker) run(p *Pool) {
	defer close(w.done)

	for {
		if err := w.sem.Acquire(context.Background(), 1); err != nil {
			liblog.WithError(err).WithField("worker", w.id).Error("workerpool: semaphore acquire failed")
			return
		}

		if w.task == nil {
			return
		}

		rc := w.task(w.arg)
		if rc != 0 {
			liblog.WithField("worker", w.id).WithField("pool", p.name).WithField("code", rc).Warn("workerpool: task returned non-zero")
		}

		p.rejoinIdle(w)
	}
}

// assign writes the task slot and wakes the worker. The caller must only
// call this on a worker it has just popped from idle under p.mu; the lock
// need not still be held, since no one else touches a popped worker's slots.
func (w *worker) assign(t Task, arg interface{}) {
	w.task = t
	w.arg = arg
	w.sem.Release(1)
}

// terminate posts the sentinel task and waits for the worker goroutine
// to return. The caller must hold p.mu and release it is NOT required:
// termination does not reenter the pool.
func (w *worker) terminate() {
	w.task = nil
	w.arg = nil
	w.sem.Release(1)
	<-w.done
}
