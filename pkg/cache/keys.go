package cache

import "fmt"

// Key creates a cache key with prefix and ID.
func Key(prefix string, id string) string {
	return fmt.Sprintf("%s:%s", prefix, id)
}

// KeyWithParams creates a cache key with multiple parameters.
func KeyWithParams(prefix string, params ...interface{}) string {
	key := prefix
	for _, param := range params {
		key = fmt.Sprintf("%s:%v", key, param)
	}
	return key
}
