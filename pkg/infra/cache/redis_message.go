package cache

import "encoding/json"

// RedisMessage is the envelope published on the queue events channel.
type RedisMessage struct {
	Type  string          `json:"type"`
	Event json.RawMessage `json:"event"`
}
