package ctxutil

import (
	"context"
	"time"
)

// DefaultDBTimeout — верхняя граница на один поход в БД.
var DefaultDBTimeout = 5 * time.Second

// WithDBTimeout — стандартный таймаут для запросов к БД.
// Если у родителя дедлайн ближе — берём остаток.
func WithDBTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultDBTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultDBTimeout)
}
