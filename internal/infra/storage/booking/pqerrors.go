package booking

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// pgUniqueViolation код PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

// pgSerializationFailure код PostgreSQL для сбоя сериализации: транзакция
// уровня SERIALIZABLE должна быть повторена целиком.
const pgSerializationFailure = "40001"

// Имена уникальных индексов из migrations/001_init.sql.
// По имени нарушенного ограничения определяется, какое именно бизнес-правило
// сработало: гонка, проскочившая мимо предварительной проверки, превращается
// в тот же отказ, который дала бы сама проверка.
const (
	constraintRoomDateSlot = "uq_bookings_room_date_slot"
	constraintUserDateSlot = "uq_bookings_user_date_slot"
	constraintTeamDateSlot = "uq_bookings_team_date_slot"
)

// mapUniqueViolation переводит нарушение уникальности в доменную ошибку
// репозитория. Для прочих ошибок возвращает nil (вызывающий оборачивает их
// как ErrExecQuery).
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != pgUniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case constraintRoomDateSlot:
		return ErrRoomSlotTaken
	case constraintUserDateSlot:
		return ErrUserSlotTaken
	case constraintTeamDateSlot:
		return ErrTeamSlotTaken
	default:
		return nil
	}
}

// wrapExecError оборачивает ошибку выполнения запроса как ErrExecQuery.
// Сбой сериализации сохраняется в цепочке через %w: его распознаёт retry-цикл
// DoSerializable (errors.As до *pq.Error), а строковая обёртка сделала бы
// сбой невидимым, и повтор не состоялся бы.
func wrapExecError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgSerializationFailure {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
