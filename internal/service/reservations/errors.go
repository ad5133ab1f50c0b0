package reservations

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation некорректный запрос
	ErrValidation = errors.New("validation error")

	// ErrMissingFields не заполнены обязательные поля
	ErrMissingFields = fmt.Errorf("%w: missing required fields", ErrValidation)

	// ErrInvalidSlot слот не существует в конфигурации парковки
	ErrInvalidSlot = fmt.Errorf("%w: invalid slot", ErrValidation)

	// ErrInvalidTime некорректное время бронирования
	ErrInvalidTime = fmt.Errorf("%w: invalid booking time", ErrValidation)

	// ErrTimeInPast время бронирования в прошлом
	ErrTimeInPast = fmt.Errorf("%w: booking time is in the past", ErrInvalidTime)

	// ErrOutsideBusinessHours время бронирования вне рабочих часов
	ErrOutsideBusinessHours = fmt.Errorf("%w: outside business hours", ErrInvalidTime)

	// ErrInvalidStatus неизвестный статус в фильтре
	ErrInvalidStatus = fmt.Errorf("%w: invalid booking status", ErrValidation)

	// ErrConflict запрос противоречит текущему состоянию
	ErrConflict = errors.New("conflict")

	// ErrSlotOccupied датчик сообщает, что место занято
	ErrSlotOccupied = fmt.Errorf("%w: parking slot is already occupied", ErrConflict)

	// ErrNotPending бронирование не ожидает оплаты
	ErrNotPending = fmt.Errorf("%w: booking is not pending payment", ErrConflict)

	// ErrSlotTaken место уже занято другим оплаченным бронированием или автомобилем
	ErrSlotTaken = fmt.Errorf("%w: slot is no longer available", ErrConflict)

	// ErrNotFound бронирование не найдено
	ErrNotFound = errors.New("booking not found")

	// ErrInternal внутренняя ошибка сервиса
	ErrInternal = errors.New("service: internal error")
)
