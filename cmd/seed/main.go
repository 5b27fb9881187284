// Сидер каталога комнат: наполняет базу стандартным набором комнат.
// Повторный запуск безопасен: уже существующие имена пропускаются.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/deskhive/RoomBookingService/internal/config"
	"github.com/deskhive/RoomBookingService/internal/domain"
	roomRepo "github.com/deskhive/RoomBookingService/internal/infra/storage/room"
	"github.com/deskhive/RoomBookingService/pkg/logger"
)

func defaultRooms() []*domain.Room {
	rooms := make([]*domain.Room, 0, 15)

	for i := 1; i <= 8; i++ {
		rooms = append(rooms, &domain.Room{
			Name:     fmt.Sprintf("Private Room %d", i),
			Type:     domain.RoomTypePrivate,
			Capacity: 1,
			IsActive: true,
		})
	}

	for i := 1; i <= 4; i++ {
		rooms = append(rooms, &domain.Room{
			Name:     fmt.Sprintf("Conference Room %d", i),
			Type:     domain.RoomTypeConference,
			Capacity: 10,
			IsActive: true,
		})
	}

	for i := 1; i <= 3; i++ {
		rooms = append(rooms, &domain.Room{
			Name:     fmt.Sprintf("Shared Desk %d", i),
			Type:     domain.RoomTypeShared,
			Capacity: 4,
			IsActive: true,
		})
	}

	return rooms
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	repo := roomRepo.NewRepository(db)
	ctx := context.Background()

	created := 0
	for _, room := range defaultRooms() {
		if _, err := repo.Create(ctx, room); err != nil {
			if errors.Is(err, roomRepo.ErrRoomNameTaken) {
				log.Info("Room %q already exists, skipping", room.Name)
				continue
			}
			log.Fatal("Failed to create room %q: %v", room.Name, err)
		}
		created++
	}

	log.Info("Successfully created %d rooms", created)
}
