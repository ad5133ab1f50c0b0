package amqppublisher

import "errors"

var (
	// ErrConnect возвращается, если не удалось подключиться к брокеру или объявить exchange
	ErrConnect = errors.New("amqp publisher: connect failed")

	// ErrPublish возвращается, когда канал закрыт и публикация больше невозможна
	ErrPublish = errors.New("amqp publisher: publish failed")
)
