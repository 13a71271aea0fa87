package rules

import "errors"

var (
	// ErrCacheRead ошибка чтения из redis
	ErrCacheRead = errors.New("rules.cache: failed to read")

	// ErrCacheWrite ошибка записи в redis
	ErrCacheWrite = errors.New("rules.cache: failed to write")

	// ErrCacheDecode запись в кэше повреждена
	ErrCacheDecode = errors.New("rules.cache: failed to decode entry")
)
