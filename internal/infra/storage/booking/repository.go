package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/deskhive/RoomBookingService/internal/domain"
	"github.com/deskhive/RoomBookingService/pkg/dbmetrics"
	"github.com/deskhive/RoomBookingService/pkg/psqlbuilder"
	"github.com/deskhive/RoomBookingService/pkg/types"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value),
// использует её: движок допуска всегда вызывает Create внутри
// сериализуемой транзакции вместе с проверками занятости.
//
// Нарушение любого из трёх уникальных индексов транслируется в
// ErrRoomSlotTaken / ErrUserSlotTaken / ErrTeamSlotTaken, а не во внутреннюю
// ошибку: индексы служат последним рубежом защиты от гонки check-then-insert.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"user_id",
			"team_id",
			"team_name",
			"exclusive",
			"booking_date",
			"slot",
		).
		Values(
			booking.RoomID,
			booking.UserID,
			booking.TeamID,
			booking.TeamName,
			booking.Exclusive,
			booking.Date,
			booking.Slot,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, wrapExecError("Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"room_id",
		"user_id",
		"team_id",
		"team_name",
		"exclusive",
		"booking_date",
		"slot",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя вместе с данными
// комнат (LEFT JOIN: комната могла быть удалена после бронирования).
// Сортировка: сначала новые даты, внутри даты - по слоту.
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.room_id",
		"b.user_id",
		"b.team_id",
		"b.team_name",
		"b.exclusive",
		"b.booking_date",
		"b.slot",
		"b.created_at",
		"b.updated_at",
		"r.id",
		"r.name",
		"r.room_type",
		"r.capacity",
		"r.description",
	).
		From("bookings b").
		LeftJoin("rooms r ON r.id = b.room_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.booking_date DESC, b.slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithRoom, 0)
	for rows.Next() {
		var (
			item      domain.BookingWithRoom
			roomID    sql.NullInt64
			userIDCol sql.NullInt64
			createdAt sql.NullTime
			updatedAt sql.NullTime

			joinedRoomID   sql.NullInt64
			joinedName     sql.NullString
			joinedType     sql.NullString
			joinedCapacity sql.NullInt64
			joinedDesc     sql.NullString
		)

		err := rows.Scan(
			&item.ID,
			&roomID,
			&userIDCol,
			&item.TeamID,
			&item.TeamName,
			&item.Exclusive,
			&item.Date,
			&item.Slot,
			&createdAt,
			&updatedAt,
			&joinedRoomID,
			&joinedName,
			&joinedType,
			&joinedCapacity,
			&joinedDesc,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByUserID - scan row: %v", ErrScanRow, err)
		}

		item.RoomID = roomID.Int64
		item.UserID = userIDCol.Int64
		item.CreatedAt = createdAt.Time
		item.UpdatedAt = updatedAt.Time

		if joinedRoomID.Valid {
			item.Room = &domain.Room{
				ID:          joinedRoomID.Int64,
				Name:        joinedName.String,
				Type:        domain.RoomType(joinedType.String),
				Capacity:    int(joinedCapacity.Int64),
				Description: joinedDesc.String,
			}
		}

		result = append(result, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ExistsRoomSlot проверяет наличие бронирования по ключу (room, date, slot)
func (r *Repository) ExistsRoomSlot(ctx context.Context, roomID int64, date time.Time, slot types.TimeString) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"room_id": roomID, "booking_date": date, "slot": slot}, "ExistsRoomSlot")
}

// ExistsUserSlot проверяет наличие бронирования по ключу (user, date, slot)
func (r *Repository) ExistsUserSlot(ctx context.Context, userID int64, date time.Time, slot types.TimeString) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"user_id": userID, "booking_date": date, "slot": slot}, "ExistsUserSlot")
}

// ExistsTeamSlot проверяет наличие бронирования по ключу (team, date, slot)
func (r *Repository) ExistsTeamSlot(ctx context.Context, teamID int64, date time.Time, slot types.TimeString) (bool, error) {
	return r.exists(ctx, squirrel.Eq{"team_id": teamID, "booking_date": date, "slot": slot}, "ExistsTeamSlot")
}

func (r *Repository) exists(ctx context.Context, where squirrel.Eq, op string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, wrapExecError(op+" - execute query", err)
	}

	return true, nil
}

// CountRoomSlot подсчитывает бронирования по ключу (room, date, slot).
// Используется для комнат типа shared, где допуск определяется вместимостью.
func (r *Repository) CountRoomSlot(ctx context.Context, roomID int64, date time.Time, slot types.TimeString) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID, "booking_date": date, "slot": slot}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountRoomSlot - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapExecError("CountRoomSlot - execute query", err)
	}

	return count, nil
}

// CountByDateSlot подсчитывает бронирования на дату и слот по всем комнатам
// одним запросом (GROUP BY room_id). Комнаты без бронирований в результате
// отсутствуют.
func (r *Repository) CountByDateSlot(ctx context.Context, date time.Time, slot types.TimeString) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("room_id", "COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"booking_date": date, "slot": slot}).
		Where(squirrel.NotEq{"room_id": nil}).
		GroupBy("room_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountByDateSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountByDateSlot - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var roomID int64
		var count int
		if err := rows.Scan(&roomID, &count); err != nil {
			return nil, fmt.Errorf("%w: CountByDateSlot - scan row: %v", ErrScanRow, err)
		}
		counts[roomID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountByDateSlot - rows error: %v", ErrScanRow, err)
	}

	return counts, nil
}

// Delete удаляет бронирование (физическое удаление).
// Отмена реализована именно удалением: уникальные индексы при этом остаются
// простыми, а повторная отмена естественно даёт ErrBookingNotFound.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking   domain.Booking
		roomID    sql.NullInt64
		userID    sql.NullInt64
		createdAt sql.NullTime
		updatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&roomID,
		&userID,
		&booking.TeamID,
		&booking.TeamName,
		&booking.Exclusive,
		&booking.Date,
		&booking.Slot,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.RoomID = roomID.Int64
	booking.UserID = userID.Int64
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
