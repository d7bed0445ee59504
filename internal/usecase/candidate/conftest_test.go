package candidate

import "context"

type mockCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (m *mockCompleter) Complete(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.reply, m.err
}

type mockFinder struct {
	words  []string
	err    error
	seeds  []string
	limits []int
}

func (m *mockFinder) RelatedWords(_ context.Context, seed string, limit int) ([]string, error) {
	m.seeds = append(m.seeds, seed)
	m.limits = append(m.limits, limit)
	return m.words, m.err
}
