package httpapi

import "github.com/maurice2k/shardqueue/internal/applog"

func applogErrorf(template string, args ...any) {
	applog.Get().Errorf(template, args...)
}
