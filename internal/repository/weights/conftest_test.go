package weights

import (
	"context"
	"time"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hGetAllFn func(ctx context.Context, key string) (map[string]string, error)
	setNXFn   func(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	delFn     func(ctx context.Context, key string) error
	evalFn    func(ctx context.Context, script string, keys, args []string) (int64, error)
}

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hGetAllFn != nil {
		return m.hGetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	if m.setNXFn != nil {
		return m.setNXFn(ctx, key, value, ttl)
	}
	return true, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Eval(ctx context.Context, script string, keys, args []string) (int64, error) {
	if m.evalFn != nil {
		return m.evalFn(ctx, script, keys, args)
	}
	return 1, nil
}
