//go:build linux

package p4wq

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setAffinity pins the calling OS thread. The caller must hold LockOSThread.
func setAffinity(cpus []int) error {
	var set unix.CPUSet
	set.Zero()
	for _, cpu := range cpus {
		if cpu < 0 {
			return fmt.Errorf("cpu %d out of range", cpu)
		}
		set.Set(cpu)
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("sched_setaffinity %v: %w", cpus, err)
	}
	return nil
}
