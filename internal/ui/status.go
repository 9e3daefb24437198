package ui

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Status is the live scene state shown above the HUD controls.
type Status struct {
	Frozen       float64
	Elapsed      float64
	Probes       int
	FrozenProbes int
	Freezes      int
	Thaws        int
	Paused       bool
	Muted        bool
}

// Lines formats the status for display.
func (s Status) Lines() []string {
	state := "running"
	if s.Paused {
		state = "paused"
	}
	if s.Muted {
		state += ", muted"
	}
	return []string{
		fmt.Sprintf("Frozen  %5.1f%%", s.Frozen*100),
		fmt.Sprintf("Time    %ss", humanize.Ftoa(float64(int64(s.Elapsed*10))/10)),
		fmt.Sprintf("Probes  %d/%d frozen", s.FrozenProbes, s.Probes),
		fmt.Sprintf("Events  %s freeze, %s thaw", humanize.Comma(int64(s.Freezes)), humanize.Comma(int64(s.Thaws))),
		state,
	}
}
