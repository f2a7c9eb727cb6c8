package scroll

import "strconv"

// Phase 滚动阶段.
type Phase string

// 阶段常量. PhaseScroll 的监听器会收到所有阶段.
const (
	PhaseStart  Phase = "start"
	PhaseMid    Phase = "mid"
	PhaseEnd    Phase = "end"
	PhaseScroll Phase = "scroll"
)

// Valid 判断是否为可注册的阶段.
func (p Phase) Valid() bool {
	switch p {
	case PhaseStart, PhaseMid, PhaseEnd, PhaseScroll:
		return true
	}
	return false
}

// Direction 滚动方向.
type Direction int

// 方向常量.
const (
	// Backward 位置不大于上次记录的位置（包括没有移动）.
	Backward Direction = -1
	// Forward 位置大于上次记录的位置.
	Forward Direction = 1
)

// String 返回方向名称.
func (d Direction) String() string {
	switch d {
	case Backward:
		return "backward"
	case Forward:
		return "forward"
	default:
		return strconv.Itoa(int(d))
	}
}

// directionOf 根据当前位置和基准位置计算方向.
func directionOf(position, baseline float64) Direction {
	if position <= baseline {
		return Backward
	}
	return Forward
}

// Event 滚动事件.
type Event struct {
	// Position 触发时的滚动位置
	Position float64
	// Direction 相对上次阶段事件的方向
	Direction Direction
	// Phase 当前阶段，不会是 PhaseScroll
	Phase Phase
}

// Listener 滚动阶段监听器.
//
// 以指针作为身份，同一个 *Listener 可以注册到多个阶段，
// RemoveScrollPhase 按指针移除.
type Listener struct {
	fn func(Event)
}

// NewListener 创建监听器.
func NewListener(fn func(Event)) *Listener {
	return &Listener{fn: fn}
}
