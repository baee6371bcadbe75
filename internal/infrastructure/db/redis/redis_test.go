package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Options(t *testing.T) {
	opts, err := Config{Addr: "localhost:6379", DB: 2}.options()
	require.NoError(t, err)
	assert.Equal(t, defaultTimeout, opts.DialTimeout)
	assert.Equal(t, defaultTimeout, opts.ReadTimeout)
	assert.Equal(t, clientName, opts.ClientName)
	assert.Equal(t, 2, opts.DB)

	opts, err = Config{Addr: "localhost:6379", Timeout: time.Second}.options()
	require.NoError(t, err)
	assert.Equal(t, time.Second, opts.WriteTimeout)

	_, err = Config{}.options()
	assert.Error(t, err)

	_, err = Config{Addr: "localhost:6379", DB: -1}.options()
	assert.Error(t, err)
}

func TestConnect_NamesClientAndPings(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: s.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	name, err := client.ClientGetName(context.Background()).Result()
	require.NoError(t, err)
	assert.Equal(t, clientName, name)

	check := Ping(client)
	assert.NoError(t, check(context.Background()))

	s.Close()
	assert.Error(t, check(context.Background()))
}

func TestConnect_Unreachable(t *testing.T) {
	s := miniredis.RunT(t)
	addr := s.Addr()
	s.Close()

	_, err := Connect(context.Background(), Config{Addr: addr, Timeout: 200 * time.Millisecond})
	assert.ErrorContains(t, err, addr)
}
