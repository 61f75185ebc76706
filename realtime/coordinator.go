package realtime

import (
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"go-citywatch/types"
)

// State is the coordinator's connection lifecycle state.
type State int32

const (
	Disconnected State = iota
	Connecting
	Connected
	Reconnecting
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	case Reconnecting:
		return "reconnecting"
	default:
		return "disconnected"
	}
}

// FeedConn is the live change-feed channel. *websocket.Conn satisfies it.
type FeedConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// DialFunc opens a feed connection. Injectable for tests.
type DialFunc func(url string) (FeedConn, error)

func defaultDial(url string) (FeedConn, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

const (
	defaultPollInterval   = 5 * time.Second
	defaultDebounceWindow = 250 * time.Millisecond
	defaultReconnectBase  = time.Second
	defaultReconnectMax   = 30 * time.Second
)

// Config wires a Coordinator. Refresh is required; zero durations take the
// defaults above.
type Config struct {
	FeedURL        string
	Refresh        func()
	Dial           DialFunc
	PollInterval   time.Duration
	DebounceWindow time.Duration
	ReconnectBase  time.Duration
	ReconnectMax   time.Duration
	OnStateChange  func(State)
}

// Coordinator keeps the dashboard's data fresh: it listens on the live change
// feed, coalesces bursts of change notifications into single refreshes, polls
// on a fixed interval as a fallback data path, and reconnects with bounded
// exponential backoff when the channel drops. It never mutates the store
// itself; it only invokes the injected refresh callback.
type Coordinator struct {
	cfg Config

	state       atomic.Int32
	notify      chan struct{}
	quit        chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
	started     bool
	mu          sync.Mutex
	conn        FeedConn
	lastRefresh time.Time
}

func NewCoordinator(cfg Config) *Coordinator {
	if cfg.Dial == nil {
		cfg.Dial = defaultDial
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.DebounceWindow <= 0 {
		cfg.DebounceWindow = defaultDebounceWindow
	}
	if cfg.ReconnectBase <= 0 {
		cfg.ReconnectBase = defaultReconnectBase
	}
	if cfg.ReconnectMax <= 0 {
		cfg.ReconnectMax = defaultReconnectMax
	}
	return &Coordinator{
		cfg:    cfg,
		notify: make(chan struct{}, 1),
		quit:   make(chan struct{}),
	}
}

// Connect starts the feed, poll, and refresh goroutines. Call at most once.
func (c *Coordinator) Connect() {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	c.wg.Add(3)
	go c.feedLoop()
	go c.pollLoop()
	go c.refreshLoop()
}

// Disconnect tears the coordinator down: it cancels pending timers and
// retries, closes the channel, and waits for every goroutine to exit. Safe to
// call multiple times and on every exit path.
func (c *Coordinator) Disconnect() {
	c.closeOnce.Do(func() {
		close(c.quit)
		c.mu.Lock()
		if c.conn != nil {
			c.conn.Close()
		}
		c.mu.Unlock()
		c.wg.Wait()
		c.setState(Disconnected)
	})
}

// State returns the current connection state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// LastRefresh returns when the refresh callback last completed.
func (c *Coordinator) LastRefresh() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefresh
}

// RequestRefresh schedules a coalesced refresh. Multiple requests within the
// debounce window collapse into one callback invocation.
func (c *Coordinator) RequestRefresh() {
	select {
	case c.notify <- struct{}{}:
	default: // already pending; coalesce
	}
}

func (c *Coordinator) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	if prev != s && c.cfg.OnStateChange != nil {
		c.cfg.OnStateChange(s)
	}
}

// feedLoop owns the live channel: dial, read, and on failure back off and
// redial. The poll loop keeps data flowing while this loop is reconnecting.
func (c *Coordinator) feedLoop() {
	defer c.wg.Done()

	attempts := 0
	for {
		select {
		case <-c.quit:
			return
		default:
		}

		if attempts == 0 {
			c.setState(Connecting)
		}
		conn, err := c.cfg.Dial(c.cfg.FeedURL)
		if err != nil {
			c.setState(Reconnecting)
			log.Printf("realtime: feed dial failed: %v", err)
			if !c.sleep(c.backoff(attempts)) {
				return
			}
			attempts++
			continue
		}

		// Teardown may have started while the handshake was in flight; a
		// connection registered now would never be closed and Disconnect
		// would wait on this loop forever.
		select {
		case <-c.quit:
			conn.Close()
			return
		default:
		}

		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		c.setState(Connected)
		attempts = 0

		c.readMessages(conn)

		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		conn.Close()

		select {
		case <-c.quit:
			return
		default:
		}
		c.setState(Reconnecting)
		if !c.sleep(c.backoff(attempts)) {
			return
		}
		attempts++
	}
}

// readMessages consumes feed events until the connection fails. Payloads are
// never applied directly; a matching event only schedules a refetch.
func (c *Coordinator) readMessages(conn FeedConn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			select {
			case <-c.quit:
			default:
				log.Printf("realtime: feed read failed: %v", err)
			}
			return
		}

		var event types.ChangeEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			log.Printf("realtime: unparseable feed message: %v", err)
			continue
		}
		if event.TriggersRefresh() {
			c.RequestRefresh()
		}
	}
}

// pollLoop is the fixed-interval fallback path; it feeds the same coalesced
// refresh pipeline as the live channel, so the dashboard never fully stalls.
func (c *Coordinator) pollLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.RequestRefresh()
		case <-c.quit:
			return
		}
	}
}

// refreshLoop is the single refresh executor: it debounces notification
// bursts, then runs the callback to completion before looking at the next
// request. Serializing here means completions cannot arrive out of order, so
// the last-received snapshot always wins.
func (c *Coordinator) refreshLoop() {
	defer c.wg.Done()

	for {
		select {
		case <-c.quit:
			return
		case <-c.notify:
		}

		timer := time.NewTimer(c.cfg.DebounceWindow)
	drain:
		for {
			select {
			case <-c.notify: // absorbed into this refresh
			case <-timer.C:
				break drain
			case <-c.quit:
				timer.Stop()
				return
			}
		}

		c.cfg.Refresh()
		c.mu.Lock()
		c.lastRefresh = time.Now()
		c.mu.Unlock()
	}
}

// backoff returns the delay before reconnect attempt n: exponential from the
// base up to the configured ceiling.
func (c *Coordinator) backoff(attempt int) time.Duration {
	d := c.cfg.ReconnectBase
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= c.cfg.ReconnectMax {
			return c.cfg.ReconnectMax
		}
	}
	return d
}

// sleep waits for d or teardown, whichever comes first.
func (c *Coordinator) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-c.quit:
		return false
	}
}
