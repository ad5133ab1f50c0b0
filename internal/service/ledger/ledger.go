// Package ledger is the authoritative, ordered set of booking records.
//
// Ledger is not safe for concurrent use: the reservation state machine owns
// it and is its only writer.
package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Ledger реестр бронирований, сначала новые
type Ledger struct {
	store    Store
	logger   Logger
	bookings []*domain.Booking
	index    map[int64]*domain.Booking
}

// New создает пустой реестр поверх хранилища
func New(store Store, logger Logger) *Ledger {
	return &Ledger{
		store:  store,
		logger: logger,
		index:  make(map[int64]*domain.Booking),
	}
}

// Len количество записей
func (l *Ledger) Len() int {
	return len(l.bookings)
}

// Append добавляет бронирование в начало реестра
// При совпадении ID сохраняется первая запись, возвращается ErrDuplicateID
func (l *Ledger) Append(b domain.Booking) error {
	if _, exists := l.index[b.ID]; exists {
		return fmt.Errorf("%w: id=%d", ErrDuplicateID, b.ID)
	}

	stored := b
	l.bookings = append([]*domain.Booking{&stored}, l.bookings...)
	l.index[b.ID] = &stored
	return nil
}

// Find возвращает копию бронирования
func (l *Ledger) Find(id int64) (domain.Booking, error) {
	b, ok := l.index[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}
	return *b, nil
}

// SetStatus меняет статус бронирования
func (l *Ledger) SetStatus(id int64, status domain.BookingStatus) (domain.Booking, error) {
	return l.Update(id, func(b *domain.Booking) {
		b.Status = status
	})
}

// Update применяет fn к записи и возвращает её новую копию
// ID внутри fn менять нельзя: изменение игнорируется
func (l *Ledger) Update(id int64, fn func(b *domain.Booking)) (domain.Booking, error) {
	b, ok := l.index[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}

	fn(b)
	b.ID = id
	return *b, nil
}

// Remove физически удаляет запись из реестра
func (l *Ledger) Remove(id int64) (domain.Booking, error) {
	b, ok := l.index[id]
	if !ok {
		return domain.Booking{}, fmt.Errorf("%w: id=%d", ErrNotFound, id)
	}

	for i, candidate := range l.bookings {
		if candidate.ID == id {
			l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
			break
		}
	}
	delete(l.index, id)
	return *b, nil
}

// List все бронирования в порядке реестра
func (l *Ledger) List() []domain.Booking {
	out := make([]domain.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		out = append(out, *b)
	}
	return out
}

// ListByStatus бронирования в статусе status, порядок реестра
func (l *Ledger) ListByStatus(status domain.BookingStatus) []domain.Booking {
	out := make([]domain.Booking, 0)
	for _, b := range l.bookings {
		if b.Status == status {
			out = append(out, *b)
		}
	}
	return out
}

// ListActive активные бронирования по убыванию ID
func (l *Ledger) ListActive() []domain.Booking {
	active := l.ListByStatus(domain.StatusActive)
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].ID > active[j].ID
	})
	return active
}

// MaxID наибольший ID в реестре (0 для пустого)
func (l *Ledger) MaxID() int64 {
	var max int64
	for id := range l.index {
		if id > max {
			max = id
		}
	}
	return max
}

// Persist записывает весь реестр в хранилище
func (l *Ledger) Persist(ctx context.Context) error {
	if err := l.store.SaveAll(ctx, l.List()); err != nil {
		return fmt.Errorf("%w: persist %d bookings: %v", ErrPersistence, len(l.bookings), err)
	}
	return nil
}

// Load заменяет содержимое реестра данными хранилища
// Ошибка чтения или повреждённые данные не фатальны: реестр остаётся пустым, ошибка логируется
// Повторяющиеся ID и записи с неизвестным статусом отбрасываются (сохраняется первая встреченная запись)
func (l *Ledger) Load(ctx context.Context) error {
	l.bookings = nil
	l.index = make(map[int64]*domain.Booking)

	loaded, err := l.store.LoadAll(ctx)
	if err != nil {
		l.logger.Error("Load: failed to load bookings, starting with empty ledger: %v", err)
		return fmt.Errorf("%w: load: %v", ErrPersistence, err)
	}

	for i := range loaded {
		b := loaded[i]
		if !domain.IsValidStatus(b.Status) {
			l.logger.Warn("Load: skipping booking id=%d with unknown status=%q", b.ID, b.Status)
			continue
		}
		if _, exists := l.index[b.ID]; exists {
			l.logger.Warn("Load: skipping duplicate booking id=%d", b.ID)
			continue
		}
		l.bookings = append(l.bookings, &b)
		l.index[b.ID] = &b
	}

	l.logger.Info("Load: restored %d bookings", len(l.bookings))
	return nil
}
