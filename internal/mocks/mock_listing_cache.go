package mocks

import "context"

// MockListingCache misses on every Get and swallows every Set unless the
// corresponding Func field is set.
type MockListingCache struct {
	GetFunc func(ctx context.Context, key string) ([]byte, bool, error)
	SetFunc func(ctx context.Context, key string, payload []byte, tags ...string) error
}

func (m *MockListingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	return nil, false, nil
}

func (m *MockListingCache) Set(ctx context.Context, key string, payload []byte, tags ...string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, payload, tags...)
	}

	return nil
}
