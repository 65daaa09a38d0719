//go:build !linux

package p4wq

func setAffinity(cpus []int) error {
	return ErrAffinityUnsupported
}
