package mockserver

import "sync"

// requestLog is the append-only sequence of requests recorded by a Server. Its order is the
// order in which appends completed, which under concurrent load is not necessarily the order in
// which requests arrived.
type requestLog struct {
	requests []Request
	closed   bool
	lock     sync.Mutex
}

// append records a request. It returns false if the log has been closed, in which case the
// request is dropped.
func (l *requestLog) append(r Request) bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.closed {
		return false
	}
	l.requests = append(l.requests, r)
	return true
}

func (l *requestLog) close() {
	l.lock.Lock()
	l.closed = true
	l.lock.Unlock()
}

func (l *requestLog) all() []Request {
	l.lock.Lock()
	ret := append([]Request(nil), l.requests...)
	l.lock.Unlock()
	return ret
}

func (l *requestLog) first(path string) (Request, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	for _, r := range l.requests {
		if r.path == path {
			return r, true
		}
	}
	return Request{}, false
}

func (l *requestLog) last(path string) (Request, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()
	for i := len(l.requests) - 1; i >= 0; i-- {
		if l.requests[i].path == path {
			return l.requests[i], true
		}
	}
	return Request{}, false
}

func (l *requestLog) matching(path string) []Request {
	l.lock.Lock()
	defer l.lock.Unlock()
	var ret []Request
	for _, r := range l.requests {
		if r.path == path {
			ret = append(ret, r)
		}
	}
	return ret
}
