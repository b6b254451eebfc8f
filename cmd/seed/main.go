// Command seed inserts a handful of sample expense, payroll and sales
// records into a fresh database so the review endpoints can be exercised
// locally.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/branchbooks/reviewd/internal/config"
	"github.com/branchbooks/reviewd/pkg/database"
	"github.com/branchbooks/reviewd/pkg/utils"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{Level: "info", OutputPath: "stdout", Format: "console"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	migrator := database.NewMigrator(db, logger)
	if err := migrator.Run(cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	workerID := uuid.NewString()
	branchID := uuid.NewString()
	today := time.Now().Format("2006-01-02")

	for i := 1; i <= 3; i++ {
		_, err = db.Exec(`
			INSERT INTO expenses (id, worker_id, branch_id, expense_date, expense_description,
				vendor_payee, expense_category, total_amount)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), workerID, branchID, today,
			fmt.Sprintf("Sample expense %d", i), "ACME Supplies", "supplies", float64(i)*25.0,
		)
		if err != nil {
			logger.Fatal("Failed to seed expenses", zap.Error(err))
		}

		_, err = db.Exec(`
			INSERT INTO payroll_entries (id, worker_id, branch_id, date, days_worked, amount, payroll_type)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), workerID, branchID, today, 5.0, float64(i)*400.0, "weekly",
		)
		if err != nil {
			logger.Fatal("Failed to seed payroll entries", zap.Error(err))
		}

		_, err = db.Exec(`
			INSERT INTO sales_records (id, worker_id, branch_id, closure_date, closure_number,
				sales_total, card_total, cash_total)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), workerID, branchID, today,
			fmt.Sprintf("Z-%03d", i), float64(i)*1000.0, float64(i)*600.0, float64(i)*400.0,
		)
		if err != nil {
			logger.Fatal("Failed to seed sales records", zap.Error(err))
		}
	}

	logger.Info("Seed data inserted", zap.String("worker_id", workerID), zap.String("branch_id", branchID))
}
