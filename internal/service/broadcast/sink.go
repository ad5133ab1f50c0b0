package broadcast

import (
	"context"
	"time"
)

// DefaultSinkRetry пауза между попытками переподключить внешний получатель
const DefaultSinkRetry = 5 * time.Second

// Dialer открывает новый транспорт внешнего получателя (AMQP, Redis)
type Dialer func(ctx context.Context) (Writer, error)

// Subscriber регистрирует наблюдателя вместе с начальным снимком
type Subscriber interface {
	Subscribe(ctx context.Context, name string, w Writer) (*Client, error)
}

// KeepSubscribed держит внешний получатель подписанным до отмены ctx.
// Хаб снимает наблюдателя при переполнении очереди или ошибке записи и закрывает его транспорт,
// поэтому после каждого снятия транспорт открывается заново и подписка повторяется
// (получатель снова начинает с полного снимка).
func KeepSubscribed(ctx context.Context, sub Subscriber, name string, dial Dialer, retry time.Duration, logger Logger) {
	if retry <= 0 {
		retry = DefaultSinkRetry
	}

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return
		}

		w, err := dial(ctx)
		if err != nil {
			logger.Error("KeepSubscribed: sink=%s connect failed (attempt %d): %v", name, attempt, err)
			if !sleep(ctx, retry) {
				return
			}
			continue
		}

		client, err := sub.Subscribe(ctx, name, w)
		if err != nil {
			logger.Error("KeepSubscribed: sink=%s subscribe failed: %v", name, err)
			_ = w.Close()
			if !sleep(ctx, retry) {
				return
			}
			continue
		}

		attempt = 0
		select {
		case <-ctx.Done():
			return
		case <-client.Done():
			logger.Warn("KeepSubscribed: sink=%s was dropped, reconnecting in %s", name, retry)
		}

		if !sleep(ctx, retry) {
			return
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
