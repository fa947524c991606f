package schedule

// Engine applies scheduling operations to a State. Operations validate
// before mutating anything, so a rejected call leaves the state untouched.
// Rejections are reported as a false ok value, never as partial updates.
type Engine struct {
	ids IDGen
}

func NewEngine(ids IDGen) *Engine {
	if ids == nil {
		ids = NewRandomIDGen()
	}
	return &Engine{ids: ids}
}
