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

import "sync"

// Create builds a Pool named name with n workers, all idle.
func Create(name string, n int) *Pool {
	p := &Pool{name: name}
	p.cond = sync.NewCond(&p.mu)

	for i := 0; i < n; i++ {
		w := newWorker(i)
		p.workers = append(p.workers, w)
		p.idle = append(p.idle, w)
		go w.run(p)
	}
	p.idleCount = n

	return p
}

// Name returns the pool's name.
func (p *Pool) Name() string {
	return p.name
}

// Size returns the current total worker count.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// Submit assigns task/arg to the most recently idled worker (LIFO). If
// no worker is idle and blocking is false, it returns ErrWouldBlock
// immediately; if blocking is true, it waits on the pool's condition
// variable until one becomes idle.
func (p *Pool) Submit(task Task, arg interface{}, blocking bool) error {
	p.mu.Lock()

	for p.idleCount == 0 {
		if !blocking {
			p.mu.Unlock()
			return ErrWouldBlock
		}
		p.cond.Wait()
	}

	w := p.idle[len(p.idle)-1]
	p.idle = p.idle[:len(p.idle)-1]
	p.idleCount--
	p.mu.Unlock()

	w.assign(task, arg)
	return nil
}

// rejoinIdle returns w to the idle stack and wakes one Submit waiter.
func (p *Pool) rejoinIdle(w *worker) {
	p.mu.Lock()
	w.task = nil
	w.arg = nil
	p.idle = append(p.idle, w)
	p.idleCount++
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Resize grows the pool by starting newN-total new idle workers, or
// shrinks it by terminating total-newN currently idle workers. A shrink
// that needs more idle workers than are currently available fails with
// ErrWouldBlock and leaves the pool untouched.
func (p *Pool) Resize(newN int) error {
	p.mu.Lock()

	total := len(p.workers)
	if newN == total {
		p.mu.Unlock()
		return nil
	}

	if newN > total {
		for i := total; i < newN; i++ {
			w := newWorker(i)
			p.workers = append(p.workers, w)
			p.idle = append(p.idle, w)
			go w.run(p)
		}
		p.idleCount += newN - total
		p.mu.Unlock()
		return nil
	}

	shrinkBy := total - newN
	if shrinkBy > p.idleCount {
		p.mu.Unlock()
		return ErrWouldBlock
	}

	for i := 0; i < shrinkBy; i++ {
		w := p.idle[len(p.idle)-1]
		p.idle = p.idle[:len(p.idle)-1]
		p.idleCount--

		lastIdx := len(p.workers) - 1
		if w.id != lastIdx {
			moved := p.workers[lastIdx]
			moved.id = w.id
			p.workers[w.id] = moved
		}
		p.workers = p.workers[:lastIdx]

		w.terminate()
	}

	p.mu.Unlock()
	return nil
}

// Destroy waits until idle equals total, then terminates every worker.
// The non-blocking form fails with ErrWouldBlock if any worker is busy.
func (p *Pool) Destroy(blocking bool) error {
	p.mu.Lock()

	for p.idleCount != len(p.workers) {
		if !blocking {
			p.mu.Unlock()
			return ErrWouldBlock
		}
		p.cond.Wait()
	}

	for _, w := range p.workers {
		w.terminate()
	}
	p.workers = nil
	p.idle = nil
	p.idleCount = 0

	p.mu.Unlock()
	return nil
}
