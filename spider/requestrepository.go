package spider

import "sync"

// MaxRetries is how many times a failed request is fetched again.
const MaxRetries = 1

// ReqHistoryRepository remembers which requests were fetched and how often they failed.
type ReqHistoryRepository interface {
	HasVisited(req *Request) bool
	AddVisited(reqs ...*Request)
	DeleteVisited(req *Request)
	/*
	   Input: a request whose fetch failed. Output: whether it gets another try.

	   The failure is counted. A request of a task without Reload also leaves the visited
	   set, so a retry or a later seed of the same page is not skipped.
	*/
	Fail(req *Request) bool
	// Succeed forgets the failures of a request that was fetched.
	Succeed(req *Request)
}

type reqHistory struct {
	mu       sync.Mutex
	visited  map[string]struct{}
	failures map[string]int
}

func NewReqHistoryRepository() ReqHistoryRepository {
	return &reqHistory{
		visited:  make(map[string]struct{}, 100),
		failures: make(map[string]int, 100),
	}
}

func (h *reqHistory) HasVisited(req *Request) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, ok := h.visited[req.Unique()]
	return ok
}

func (h *reqHistory) AddVisited(reqs ...*Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, req := range reqs {
		h.visited[req.Unique()] = struct{}{}
	}
}

func (h *reqHistory) DeleteVisited(req *Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.visited, req.Unique())
}

func (h *reqHistory) Fail(req *Request) bool {
	key := req.Unique()

	h.mu.Lock()
	defer h.mu.Unlock()

	if !req.Task.Reload {
		delete(h.visited, key)
	}
	h.failures[key]++
	return h.failures[key] <= MaxRetries
}

func (h *reqHistory) Succeed(req *Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.failures, req.Unique())
}
