// File: internal/worker/worker.go
package worker

import (
	"log"
	"sync"
)

// Task 是交給 pool 執行的工作，例如寫入登入稽核紀錄
type Task func()

// Pool 固定數量 worker 的工作池；Stop 會等待已送出的工作完成
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool creates a pool with n workers. n<=0 defaults to 1.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				run(job)
			}
		}()
	}
	return p
}

type pool struct {
	jobs    chan Task
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
}

// Submit 在 Stop 之後會丟棄工作並記錄 log
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		log.Printf("worker: pool stopped, task dropped")
		return
	}
	p.jobs <- t
}

// Stop 可重複呼叫
func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// run 執行單一工作，panic 不會讓 worker 結束
func run(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker: task panicked: %v", r)
		}
	}()
	job()
}
