package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/doelski/mabinihub-backend-go/internal/config"
	appHTTP "github.com/doelski/mabinihub-backend-go/internal/handler/http"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/cron"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/database"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/jwt"
	"github.com/doelski/mabinihub-backend-go/internal/pkg/storage"
	"github.com/doelski/mabinihub-backend-go/internal/repository/postgresql"
	attendanceService "github.com/doelski/mabinihub-backend-go/internal/service/attendance"
	"github.com/doelski/mabinihub-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	directoryRepo := postgresql.NewEmployeeDirectoryRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	attSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		directoryRepo,
		txManager,
		cfg.Shift,
		cfg.Location(),
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attSvc).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attSvc, directoryRepo, fileService, cfg.Location())
	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server started on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}
