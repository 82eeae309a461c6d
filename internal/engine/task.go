package engine

import "time"

// task is a cancellable scheduled callback with at most one pending run.
// Each schedule issues a new token; events carrying any other token are stale.
type task struct {
	timer Timer
	token uint64
}

func (t *task) cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.token = 0
}

func (t *task) pending(token uint64) bool {
	return token != 0 && token == t.token
}

func (e *Engine) schedule(t *task, kind eventKind, d time.Duration) {
	t.cancel()
	e.seq++
	token := e.seq
	t.token = token
	t.timer = e.clock.AfterFunc(d, func() {
		e.post(event{kind: kind, token: token})
	})
}
