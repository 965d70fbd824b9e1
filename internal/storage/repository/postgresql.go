// Package repository реализует хранилище данных на основе PostgreSQL
// для клуба лояльности: учётные записи, профили участников, каталог
// купонов, выданные купоны, журнал операций с балансом и PIX-платежи.
// Атомарные операции журнала выполняются одной транзакцией с блокировкой
// строки профиля.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ожидаемые бизнес-отказы операций журнала. Вызывающая сторона
// превращает их в результат {success:false}, состояние при этом
// не меняется.
var (
	// ErrProfileNotFound — профиль участника не существует.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrInsufficientBalance — кредитов меньше, чем стоимость купона.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrCouponNotFound — купона нет в каталоге.
	ErrCouponNotFound = errors.New("coupon not found")
	// ErrBillingNotFound — платёж с таким billing_id не создавался
	// или уже обработан.
	ErrBillingNotFound = errors.New("billing not found")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет, что схема применена. Отсутствие таблиц —
// ошибка конфигурации (миграции не накатаны), сервис не должен стартовать.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'profiles'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table profiles missing or query error: %w", err)
	}
	return nil
}
