package util

import "runtime"

// GetOptimalPoolSize returns the worker count for CPU-bound batch work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// The fixer uses the same number for its worker goroutines and for the
// tree-sitter parser pool, so a worker never waits on a parser.
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU() * 2
	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}
	return poolSize
}

// GetOptimalPoolSizeWithOverride returns override when positive, otherwise
// GetOptimalPoolSize().
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
