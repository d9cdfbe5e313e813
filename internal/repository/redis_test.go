package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInitRedis_Unreachable(t *testing.T) {
	cases := []struct {
		name     string
		addr     string
		password string
		db       int
	}{
		{name: "Closed port", addr: "127.0.0.1:1"},
		{name: "Closed port with credentials", addr: "127.0.0.1:1", password: "secret", db: 3},
		{name: "Unresolvable host", addr: "redis.invalid:6379"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := time.Now()
			client, err := InitRedis(tc.addr, tc.password, tc.db)

			assert.Error(t, err)
			assert.Nil(t, client, "a client that failed its ping must not be handed out")
			assert.Less(t, time.Since(start), 5*time.Second)
		})
	}
}
