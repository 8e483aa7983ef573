// Package circuitbreaker 熔断器
//
// 用于保护可降级的外部依赖（目前是Redis图书缓存）：
// 缓存连续失败达到阈值后熔断，后续请求不再访问Redis，直接按未命中处理，
// 避免Redis故障时每个请求都等待超时。
//
// 状态转换：
//
//	CLOSED --连续失败>=阈值--> OPEN --超时--> HALF_OPEN --成功--> CLOSED
//	                                           HALF_OPEN --失败--> OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行
	StateOpen                  // 熔断，快速失败
	StateHalfOpen              // 探测，只放行MaxRequests个请求
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpenState 熔断器处于打开状态（或半开状态探测名额已用完）
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	// MaxFailures 连续失败多少次后熔断
	MaxFailures uint32
	// Timeout OPEN状态持续时间，之后转为HALF_OPEN
	Timeout time.Duration
	// MaxRequests HALF_OPEN状态允许的探测请求数（0按1处理）
	MaxRequests uint32
	// OnStateChange 状态变化回调（记录日志、更新指标）
	OnStateChange func(name string, from, to State)
}

// CircuitBreaker 熔断器，并发安全
type CircuitBreaker struct {
	name   string
	config Config

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增，丢弃切换前发出的请求结果
	failures   uint32 // 连续失败次数
	inFlight   uint32 // HALF_OPEN下已放行的请求数
	openedAt   time.Time
	now        func() time.Time
}

// New 创建熔断器
func New(name string, config Config) *CircuitBreaker {
	if config.MaxFailures == 0 {
		config.MaxFailures = 5
	}
	if config.MaxRequests == 0 {
		config.MaxRequests = 1
	}
	return &CircuitBreaker{name: name, config: config, now: time.Now}
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn，直接返回ErrOpenState；否则返回fn的错误
func (cb *CircuitBreaker) Execute(fn func() error) error {
	generation, err := cb.before()
	if err != nil {
		return err
	}

	err = fn()
	cb.after(generation, err == nil)
	return err
}

// State 当前状态（OPEN超时后读取会得到HALF_OPEN）
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.current()
}

func (cb *CircuitBreaker) before() (uint64, error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.current() {
	case StateOpen:
		return cb.generation, ErrOpenState
	case StateHalfOpen:
		if cb.inFlight >= cb.config.MaxRequests {
			return cb.generation, ErrOpenState
		}
		cb.inFlight++
	}
	return cb.generation, nil
}

func (cb *CircuitBreaker) after(generation uint64, success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state := cb.current()
	if generation != cb.generation {
		return
	}

	if success {
		cb.failures = 0
		if state == StateHalfOpen {
			cb.setState(StateClosed)
		}
		return
	}

	cb.failures++
	if state == StateHalfOpen || cb.failures >= cb.config.MaxFailures {
		cb.setState(StateOpen)
	}
}

// current 调用方需持有锁
func (cb *CircuitBreaker) current() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.Timeout {
		cb.setState(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) setState(state State) {
	if cb.state == state {
		return
	}

	from := cb.state
	cb.state = state
	cb.generation++
	cb.failures = 0
	cb.inFlight = 0
	if state == StateOpen {
		cb.openedAt = cb.now()
	}

	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.name, from, state)
	}
}
