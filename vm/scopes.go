package vm

// ExecutionScopes holds the named values handed to hints before a run
// starts. A fresh instance is built for every run.
type ExecutionScopes struct {
	data []map[string]interface{}
}

func NewExecutionScopes() *ExecutionScopes {
	return &ExecutionScopes{data: []map[string]interface{}{{}}}
}

// InsertValue sets name in the innermost scope.
func (s *ExecutionScopes) InsertValue(name string, value interface{}) {
	s.data[len(s.data)-1][name] = value
}

// Get looks name up from the innermost scope outwards.
func (s *ExecutionScopes) Get(name string) (interface{}, bool) {
	for i := len(s.data) - 1; i >= 0; i-- {
		if value, ok := s.data[i][name]; ok {
			return value, true
		}
	}
	return nil, false
}
