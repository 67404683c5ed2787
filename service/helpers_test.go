package service

import (
	"context"
	"strings"
	"sync"
)

// fakeCompleter answers prompts from a script. Replies are matched by the
// first key contained in the prompt; fallback is used otherwise.
type fakeCompleter struct {
	mu       sync.Mutex
	replies  map[string]string
	fallback string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	for key, reply := range f.replies {
		if strings.Contains(prompt, key) {
			return reply, nil
		}
	}
	return f.fallback, nil
}

func (f *fakeCompleter) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
