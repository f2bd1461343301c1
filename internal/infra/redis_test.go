package infra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRedis_URLInvalida(t *testing.T) {
	_, err := NewRedis("http://not-redis")
	assert.ErrorContains(t, err, "parse url")
}

// nil clients disable the cache without panicking.
func TestJSONCache_Nil(t *testing.T) {
	var c *JSONCache
	var dest map[string]int
	assert.False(t, c.Get(context.Background(), "k", &dest))
	c.Set(context.Background(), "k", 1, time.Minute)
	c.Delete(context.Background(), "k")

	c = NewJSONCache(nil)
	assert.False(t, c.Get(context.Background(), "k", &dest))
}
