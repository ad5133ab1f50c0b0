package redispublisher

import "errors"

// ErrConnect возвращается, если Redis не ответил на PING при старте
var ErrConnect = errors.New("redis publisher: connect failed")
