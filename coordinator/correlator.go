package coordinator

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quizmcp/codec"
)

// DefaultCallTimeout is the fixed per-request deadline.
const DefaultCallTimeout = 30 * time.Second

// ErrToolCallTimeout distinguishes "no response arrived" from "an error
// response arrived".
var ErrToolCallTimeout = errors.New("tool call timed out")

// Outcome resolves one issued request: exactly one of Result or Err.
type Outcome struct {
	Result []byte
	Err    error
}

type pendingRequest struct {
	id        int64
	createdAt time.Time
	ch        chan Outcome
	timer     *time.Timer
}

// Correlator matches asynchronous responses to issued requests by id.
// Ids are monotonically increasing within one instance and are never
// reused, so a late response from a previous agent process can never be
// mistaken for the answer to a newer request. Timeout and completion are
// mutually exclusive: whichever removes the pending entry first wins, the
// loser's action is a no-op.
type Correlator struct {
	nextID  atomic.Int64
	timeout time.Duration

	mu      sync.Mutex
	pending map[int64]*pendingRequest
}

func NewCorrelator() *Correlator {
	return &Correlator{
		timeout: DefaultCallTimeout,
		pending: make(map[int64]*pendingRequest),
	}
}

// Issue allocates the next id and records a pending request. The returned
// channel receives exactly one Outcome: the matching response, or a
// timeout error after the fixed deadline.
func (c *Correlator) Issue(method string) (int64, <-chan Outcome) {
	id := c.nextID.Add(1)
	p := &pendingRequest{
		id:        id,
		createdAt: time.Now(),
		ch:        make(chan Outcome, 1),
	}
	// the timer is set before the entry becomes visible in the map, so
	// Complete on another goroutine always sees a fully built request
	p.timer = time.AfterFunc(c.timeout, func() { c.expire(id) })

	c.mu.Lock()
	c.pending[id] = p
	c.mu.Unlock()
	return id, p.ch
}

func (c *Correlator) expire(id int64) {
	p, ok := c.take(id)
	if !ok {
		// completed first
		return
	}
	p.ch <- Outcome{Err: fmt.Errorf("%w: no response for request %d within %s", ErrToolCallTimeout, id, c.timeout)}
}

// Complete resolves the pending request matching the response's id. A
// response with an unknown or already-expired id is dropped without
// touching other pending requests.
func (c *Correlator) Complete(msg codec.Message) {
	id, ok := codec.IDAsInt64(msg.ID)
	if !ok {
		return
	}
	p, ok := c.take(id)
	if !ok {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}

	if msg.Error != nil {
		errMsg := msg.Error.Message
		if errMsg == "" {
			errMsg = "tool call failed"
		}
		p.ch <- Outcome{Err: errors.New(errMsg)}
		return
	}
	p.ch <- Outcome{Result: msg.Result}
}

// Discard removes a pending request without resolving it. Used when the
// send itself failed or the caller's context was cancelled.
func (c *Correlator) Discard(id int64) {
	if p, ok := c.take(id); ok && p.timer != nil {
		p.timer.Stop()
	}
}

// FailAll rejects every pending request with err. Called when the
// transport underneath dies.
func (c *Correlator) FailAll(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[int64]*pendingRequest)
	c.mu.Unlock()

	for _, p := range pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		p.ch <- Outcome{Err: err}
	}
}

// Pending reports the number of in-flight requests. Mainly used for tests.
func (c *Correlator) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func (c *Correlator) take(id int64) (*pendingRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pending[id]
	if ok {
		delete(c.pending, id)
	}
	return p, ok
}
