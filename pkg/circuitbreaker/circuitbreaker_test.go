package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errDown = errors.New("redis: connection refused")

// fakeClock 可手动推进的时钟
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(maxFailures uint32, timeout time.Duration) (*CircuitBreaker, *fakeClock, *[]string) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	var transitions []string
	cb := New("book-cache", Config{
		MaxFailures: maxFailures,
		Timeout:     timeout,
		OnStateChange: func(name string, from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})
	cb.now = clock.Now
	return cb, clock, &transitions
}

func fail() error    { return errDown }
func succeed() error { return nil }

// TestCircuitBreaker_ClosedState 失败次数未达到阈值时保持关闭
func TestCircuitBreaker_ClosedState(t *testing.T) {
	cb, _, _ := newTestBreaker(3, time.Second)

	for i := 0; i < 2; i++ {
		if err := cb.Execute(fail); !errors.Is(err, errDown) {
			t.Fatalf("期望返回原始错误，实际%v", err)
		}
	}
	// 一次成功清零连续失败
	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("期望成功，实际%v", err)
	}
	for i := 0; i < 2; i++ {
		_ = cb.Execute(fail)
	}

	if cb.State() != StateClosed {
		t.Errorf("期望状态为closed，实际%s", cb.State())
	}
}

// TestCircuitBreaker_Open 连续失败达到阈值后快速失败
func TestCircuitBreaker_Open(t *testing.T) {
	cb, _, transitions := newTestBreaker(3, time.Second)

	for i := 0; i < 3; i++ {
		_ = cb.Execute(fail)
	}
	if cb.State() != StateOpen {
		t.Fatalf("期望状态为open，实际%s", cb.State())
	}

	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断时不应该执行请求")
	}
	if len(*transitions) != 1 || (*transitions)[0] != "closed->open" {
		t.Errorf("状态变化回调不符合预期: %v", *transitions)
	}
}

// TestCircuitBreaker_Recover 超时后半开探测成功则关闭
func TestCircuitBreaker_Recover(t *testing.T) {
	cb, clock, transitions := newTestBreaker(1, 30*time.Second)

	_ = cb.Execute(fail)
	clock.Advance(30 * time.Second)

	if cb.State() != StateHalfOpen {
		t.Fatalf("期望状态为half_open，实际%s", cb.State())
	}
	if err := cb.Execute(succeed); err != nil {
		t.Fatalf("探测请求应该放行，实际%v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望状态为closed，实际%s", cb.State())
	}

	want := []string{"closed->open", "open->half_open", "half_open->closed"}
	if len(*transitions) != len(want) {
		t.Fatalf("期望%v，实际%v", want, *transitions)
	}
	for i := range want {
		if (*transitions)[i] != want[i] {
			t.Errorf("第%d次状态变化期望%s，实际%s", i, want[i], (*transitions)[i])
		}
	}
}

// TestCircuitBreaker_HalfOpenFailure 半开探测失败立即重新熔断
func TestCircuitBreaker_HalfOpenFailure(t *testing.T) {
	cb, clock, _ := newTestBreaker(1, 30*time.Second)

	_ = cb.Execute(fail)
	clock.Advance(31 * time.Second)
	_ = cb.Execute(fail)

	if cb.State() != StateOpen {
		t.Fatalf("期望状态为open，实际%s", cb.State())
	}

	// 重新计时
	clock.Advance(10 * time.Second)
	if err := cb.Execute(succeed); !errors.Is(err, ErrOpenState) {
		t.Errorf("期望返回ErrOpenState，实际%v", err)
	}
}

// TestCircuitBreaker_HalfOpenLimit 半开状态只放行MaxRequests个请求
func TestCircuitBreaker_HalfOpenLimit(t *testing.T) {
	cb, clock, _ := newTestBreaker(1, time.Second)
	_ = cb.Execute(fail)
	clock.Advance(time.Second)

	// 探测请求执行期间，其他请求被拒绝
	var inner error
	err := cb.Execute(func() error {
		inner = cb.Execute(succeed)
		return nil
	})
	if err != nil {
		t.Fatalf("第一个探测请求应该放行，实际%v", err)
	}
	if !errors.Is(inner, ErrOpenState) {
		t.Errorf("并发探测请求期望ErrOpenState，实际%v", inner)
	}
}

func TestNew_Defaults(t *testing.T) {
	cb := New("defaults", Config{Timeout: time.Second})
	if cb.config.MaxFailures != 5 || cb.config.MaxRequests != 1 {
		t.Errorf("默认值不符合预期: %+v", cb.config)
	}
	if cb.State().String() != "closed" {
		t.Errorf("初始状态应为closed，实际%s", cb.State())
	}
}
