package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// FileStore хранит весь набор бронирований JSON-массивом в одном файле
type FileStore struct {
	path string
}

// NewFileStore создает хранилище по пути path (директория создаётся при первой записи)
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path путь к файлу бронирований
func (s *FileStore) Path() string {
	return s.path
}

// SaveAll атомарно перезаписывает файл: пишем во временный файл рядом и переименовываем
func (s *FileStore) SaveAll(ctx context.Context, bookings []domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: SaveAll - %v", ErrWrite, err)
	}

	records := make([]record, 0, len(bookings))
	for _, b := range bookings {
		records = append(records, fromDomain(b))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: SaveAll - marshal: %v", ErrWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: SaveAll - create dir: %v", ErrWrite, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: SaveAll - create temp file: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: SaveAll - write temp file: %v", ErrWrite, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: SaveAll - sync temp file: %v", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: SaveAll - close temp file: %v", ErrWrite, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: SaveAll - rename: %v", ErrWrite, err)
	}

	return nil
}

// LoadAll читает набор бронирований в порядке файла
// Отсутствующий или пустой файл - пустой набор без ошибки
func (s *FileStore) LoadAll(ctx context.Context) ([]domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: LoadAll - %v", ErrRead, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: LoadAll - read file: %v", ErrRead, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: LoadAll - %s: %v", ErrCorrupt, s.path, err)
	}

	bookings := make([]domain.Booking, 0, len(records))
	for _, r := range records {
		bookings = append(bookings, r.toDomain())
	}
	return bookings, nil
}
