package llm

import "context"

// Mock is a canned Generator for tests.
type Mock struct {
	Response string
	Err      error
	Calls    int
}

func (m *Mock) Generate(_ context.Context, _ string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
