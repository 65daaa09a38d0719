package util

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Contains checks if a slice contains a specific string
func Contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// Round Method to round to 2 decimals
func Round(f float64) float64 {
	return math.Round(f*100) / 100
}

// ParseCPUList parses a kernel style cpu list ("0-3,6") into sorted, unique
// cpu numbers. An empty list yields nil.
func ParseCPUList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	seen := make(map[int]struct{})
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty element in cpu list %q", s)
		}

		lo, hi, isRange := strings.Cut(part, "-")
		first, err := strconv.Atoi(lo)
		if err != nil || first < 0 {
			return nil, fmt.Errorf("invalid cpu %q in list %q", lo, s)
		}
		last := first
		if isRange {
			last, err = strconv.Atoi(hi)
			if err != nil || last < first {
				return nil, fmt.Errorf("invalid cpu range %q in list %q", part, s)
			}
		}
		for cpu := first; cpu <= last; cpu++ {
			seen[cpu] = struct{}{}
		}
	}

	cpus := make([]int, 0, len(seen))
	for cpu := range seen {
		cpus = append(cpus, cpu)
	}
	sort.Ints(cpus)
	return cpus, nil
}

// Ratio returns part/total rounded to 2 decimals, 0 when total is 0.
func Ratio[T ~int | ~int64 | ~float64](part, total T) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(part) / float64(total))
}
