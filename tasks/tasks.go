package tasks

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/wormhole-foundation/stone-prover-sdk/vm"
)

// Task is a unit of work for the bootloader: a program to run or the
// snapshot of a program that already ran.
type Task interface {
	isTask()
}

type ProgramTask struct {
	Program *vm.Program
}

type PieTask struct {
	Pie *vm.CairoPie
}

func (ProgramTask) isTask() {}
func (PieTask) isTask()     {}

// TaskSpec is one entry of the bootloader task list. The bootloader runs the
// list in order.
type TaskSpec struct {
	Task Task
}

type TaskKind int

const (
	TaskKindProgram TaskKind = iota
	TaskKindPie
)

func (k TaskKind) String() string {
	switch k {
	case TaskKindProgram:
		return "program"
	case TaskKindPie:
		return "pie"
	}
	return "unknown"
}

// TaskError reports which input of a batch could not be loaded. Index is the
// position within the programs or the pies, depending on Kind.
type TaskError struct {
	Kind  TaskKind
	Index int
	Err   error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s task %d: %v", e.Kind, e.Index, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// Is matches another *TaskError of the same kind. A zero Index in the target
// matches any index.
func (e *TaskError) Is(target error) bool {
	t, ok := target.(*TaskError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Index == 0 || t.Index == e.Index)
}

// MakeBootloaderTasks loads every program and every PIE and returns the task
// list: programs first, then PIEs, each group in input order. A single bad
// input fails the whole batch.
func MakeBootloaderTasks(programs, pies [][]byte) ([]TaskSpec, error) {
	specs := make([]TaskSpec, 0, len(programs)+len(pies))

	for i, raw := range programs {
		program, err := vm.ParseProgram(raw, "main")
		if err != nil {
			return nil, &TaskError{Kind: TaskKindProgram, Index: i, Err: err}
		}
		specs = append(specs, TaskSpec{Task: ProgramTask{Program: program}})
	}

	for i, raw := range pies {
		pie, err := vm.ParseCairoPie(raw)
		if err != nil {
			return nil, &TaskError{Kind: TaskKindPie, Index: i, Err: err}
		}
		specs = append(specs, TaskSpec{Task: PieTask{Pie: pie}})
	}

	log.Debug().Int("programs", len(programs)).Int("pies", len(pies)).Msg("assembled bootloader tasks")
	return specs, nil
}

// Kind reports which task variant s wraps.
func (s TaskSpec) Kind() (TaskKind, error) {
	switch s.Task.(type) {
	case ProgramTask:
		return TaskKindProgram, nil
	case PieTask:
		return TaskKindPie, nil
	}
	return 0, errors.Errorf("unexpected task type %T", s.Task)
}
