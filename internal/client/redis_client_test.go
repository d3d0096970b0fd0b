package client

import "testing"

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("REDIS_PASSWORD", "secret")

	opts := Options()
	if opts.Addr != "redis.internal:6380" || opts.Password != "secret" {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestOptionsDefaultAddr(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")

	if got := Options().Addr; got != defaultRedisAddr {
		t.Errorf("Addr = %q, want %q", got, defaultRedisAddr)
	}
}

func TestGetRedisIsSingleton(t *testing.T) {
	if GetRedis() != GetRedis() {
		t.Error("GetRedis() returned different instances")
	}
}
