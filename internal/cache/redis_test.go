package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedisUnreachable(t *testing.T) {
	rdb, err := ConnectRedis("127.0.0.1:1", 0)
	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestDefaultQueueName(t *testing.T) {
	assert.Equal(t, DefaultQueueName, NewPublisher(nil, "").queue)
	assert.Equal(t, "custom", NewQueue(nil, "custom").Name())
}
