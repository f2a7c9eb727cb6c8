package timing

// Phase 一次连续触发（burst）中的阶段.
type Phase string

// 阶段常量.
const (
	PhaseStart Phase = "start"
	PhaseMid   Phase = "mid"
	PhaseEnd   Phase = "end"
)

// String 返回阶段名称.
func (p Phase) String() string {
	return string(p)
}

// PhaseFunc 阶段回调.
type PhaseFunc func(Phase)

// Handlers 各阶段的回调.
//
// 某阶段未设置回调时使用 Fallback，Fallback 也为空则跳过该阶段.
type Handlers struct {
	Start    PhaseFunc
	Mid      PhaseFunc
	End      PhaseFunc
	Fallback PhaseFunc
}

// resolve 返回阶段对应的回调.
func (h Handlers) resolve(p Phase) PhaseFunc {
	var fn PhaseFunc
	switch p {
	case PhaseStart:
		fn = h.Start
	case PhaseMid:
		fn = h.Mid
	case PhaseEnd:
		fn = h.End
	}
	if fn == nil {
		fn = h.Fallback
	}
	return fn
}
