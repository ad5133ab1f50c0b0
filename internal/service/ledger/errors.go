package ledger

import "errors"

var (
	// ErrNotFound возвращается, когда бронирования с таким ID нет в реестре
	ErrNotFound = errors.New("ledger: booking not found")

	// ErrDuplicateID возвращается при попытке добавить второе бронирование с тем же ID
	ErrDuplicateID = errors.New("ledger: duplicate booking id")

	// ErrPersistence возвращается, когда не удалось записать или прочитать реестр
	ErrPersistence = errors.New("ledger: persistence error")
)
