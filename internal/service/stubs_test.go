package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"energen/internal/config"
	"energen/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// ── Cache ─────────────────────────────────────────────────────────────────────

type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string, dest any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *memCache) Set(_ context.Context, key string, v any, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, _ := json.Marshal(v)
	c.data[key] = raw
}

func (c *memCache) Delete(_ context.Context, keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	c.deletes++
}

// ── Revocador ─────────────────────────────────────────────────────────────────

type memRevocador struct {
	revocados map[string]time.Duration
	err       error
}

func newMemRevocador() *memRevocador { return &memRevocador{revocados: make(map[string]time.Duration)} }

func (r *memRevocador) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if r.err != nil {
		return r.err
	}
	r.revocados[jti] = ttl
	return nil
}

func (r *memRevocador) IsRevoked(_ context.Context, jti string) bool {
	_, ok := r.revocados[jti]
	return ok
}

// ── Encolador ─────────────────────────────────────────────────────────────────

type stubEncolador struct {
	jobs []dto.ReporteEmailJob
	fail bool
}

func (e *stubEncolador) EnqueueReporteEmail(_ context.Context, job dto.ReporteEmailJob) error {
	if e.fail {
		return errors.New("redis caido")
	}
	e.jobs = append(e.jobs, job)
	return nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func ptr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret-key-for-unit-tests",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		AppName:            "EnerGen Finanzas",
	}
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
