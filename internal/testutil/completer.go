package testutil

import (
	"context"
	"sync"
)

// FakeCompleter is a scripted llm.Completer. It records every prompt it
// receives and returns Response or Err. When Block is set, Complete waits
// for the context to finish and returns its error wrapped by Err.
type FakeCompleter struct {
	Response  string
	Err       error
	Block     bool
	Panic     any
	Reachable bool

	mu      sync.Mutex
	prompts []string
}

func (f *FakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.Panic != nil {
		panic(f.Panic)
	}
	if f.Block {
		<-ctx.Done()
		if f.Err != nil {
			return "", f.Err
		}
		return "", ctx.Err()
	}
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

func (f *FakeCompleter) Available(context.Context) bool {
	return f.Reachable
}

// Calls returns how many times Complete was invoked.
func (f *FakeCompleter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// Prompts returns a copy of the prompts received so far.
func (f *FakeCompleter) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}
