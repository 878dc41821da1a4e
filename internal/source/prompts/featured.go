package prompts

import (
	"sync"
)

// Featured rotates through the quick prompts one step per Advance call
type Featured struct {
	mu      sync.RWMutex
	prompts []string
	idx     int
}

// NewFeatured creates a rotator starting at the first prompt
func NewFeatured(prompts []string) *Featured {
	return &Featured{prompts: append([]string(nil), prompts...)}
}

// Current returns the featured prompt, or "" when there are none
func (f *Featured) Current() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[f.idx]
}

// Advance moves to the next prompt, wrapping around, and returns it
func (f *Featured) Advance() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.prompts) == 0 {
		return ""
	}
	f.idx = (f.idx + 1) % len(f.prompts)
	return f.prompts[f.idx]
}
