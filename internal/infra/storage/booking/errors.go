package booking

import "errors"

var (
	// ErrCorrupt возвращается, когда сохранённый набор бронирований не удаётся разобрать
	ErrCorrupt = errors.New("booking.storage: corrupt bookings data")

	// ErrWrite возвращается при ошибке записи файла бронирований
	ErrWrite = errors.New("booking.storage: failed to write bookings")

	// ErrRead возвращается при ошибке чтения файла бронирований
	ErrRead = errors.New("booking.storage: failed to read bookings")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
