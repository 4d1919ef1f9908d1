package passmgr

import (
	"fmt"
	"io"

	"github.com/glu-lang/glu/gil"
)

// Manager runs an ordered chain of passes over a Module, skipping
// disabled passes and printing the module around enabled ones.
type Manager struct {
	Passes []Pass
	Config Config
}

// NewManager builds a Manager running passes in order under cfg.
func NewManager(cfg Config, passes ...Pass) *Manager {
	return &Manager{Passes: passes, Config: cfg}
}

func (mgr *Manager) out() io.Writer {
	if mgr.Config.Writer != nil {
		return mgr.Config.Writer
	}
	return io.Discard
}

// Run applies every enabled pass to m in order, returning the final
// rewritten module. Each pass may return m unchanged or a new Module
// value; Manager always threads forward whatever the previous pass
// returned.
func (mgr *Manager) Run(m *gil.Module) *gil.Module {
	for _, p := range mgr.Passes {
		if mgr.Config.DisablePass[p.Name()] {
			continue
		}
		if mgr.Config.shouldPrintBefore(p.Name()) {
			fmt.Fprintf(mgr.out(), "-- before %s --\n%s", p.Name(), gil.Print(m))
		}
		m = p.Run(m)
		if mgr.Config.shouldPrintAfter(p.Name()) {
			fmt.Fprintf(mgr.out(), "-- after %s --\n%s", p.Name(), gil.Print(m))
		}
	}
	return m
}
