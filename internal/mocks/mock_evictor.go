package mocks

import "context"

type MockEvictor struct {
	EvictByTagFunc func(ctx context.Context, tag string) error
	EvictedTags    []string
}

func (m *MockEvictor) EvictByTag(ctx context.Context, tag string) error {
	m.EvictedTags = append(m.EvictedTags, tag)

	if m.EvictByTagFunc != nil {
		return m.EvictByTagFunc(ctx, tag)
	}

	return nil
}
