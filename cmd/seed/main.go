package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/config"
	"github.com/millerserhii/shipment-tracking-api/internal/logger"
	"github.com/millerserhii/shipment-tracking-api/internal/models"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	var filepath string
	flag.StringVar(&filepath, "file", "resources/shipment_data.csv", "CSV file with shipment rows")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// All imported shipments belong to the first registered user.
	userRepo := repository.NewUserRepository(models.DB)
	user, err := userRepo.First()
	if err != nil || user == nil {
		stdLog.Fatalf("No user found in the database.")
	}

	rows, err := readRows(filepath)
	if err != nil {
		stdLog.Fatalf("Failed to read %s: %v", filepath, err)
	}

	// One transaction for the whole file: a bad row rolls everything back.
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		addressRepo := repository.NewAddressRepository(tx)
		articleRepo := repository.NewArticleRepository(tx)
		shipmentRepo := repository.NewShipmentRepository(tx)

		for i, row := range rows {
			shipment, err := buildShipment(row, user.ID, addressRepo, articleRepo)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
			if err := shipmentRepo.Save(shipment, user.ID, false); err != nil {
				return fmt.Errorf("row %d: %w", i+2, err)
			}
		}
		return nil
	})
	if err != nil {
		stdLog.Fatalf("Import failed, nothing was written: %v", err)
	}

	stdLog.Printf("Database populated successfully (%d shipments).", len(rows))
}

// readRows loads the CSV into header-keyed maps.
func readRows(filepath string) ([]map[string]string, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("no data rows")
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[strings.TrimSpace(name)] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func buildShipment(row map[string]string, userID uint, addresses repository.AddressRepository, articles repository.ArticleRepository) (*models.UserShipment, error) {
	sender, err := getOrCreateAddress(row["sender_address"], userID, addresses)
	if err != nil {
		return nil, fmt.Errorf("sender_address: %w", err)
	}
	receiver, err := getOrCreateAddress(row["receiver_address"], userID, addresses)
	if err != nil {
		return nil, fmt.Errorf("receiver_address: %w", err)
	}
	article, err := getOrCreateArticle(row["article_name"], row["article_price"], row["SKU"], userID, articles)
	if err != nil {
		return nil, err
	}

	quantity, err := strconv.Atoi(row["article_quantity"])
	if err != nil || quantity < 1 {
		return nil, fmt.Errorf("article_quantity %q is not a positive integer", row["article_quantity"])
	}
	if row["tracking_number"] == "" || row["carrier"] == "" || row["status"] == "" {
		return nil, fmt.Errorf("tracking_number, carrier and status are required")
	}

	return &models.UserShipment{
		UserID:            userID,
		ArticleID:         article.ID,
		ArticleQuantity:   quantity,
		TrackingNumber:    row["tracking_number"],
		Carrier:           row["carrier"],
		Status:            row["status"],
		SenderAddressID:   sender.ID,
		ReceiverAddressID: receiver.ID,
	}, nil
}

// getOrCreateAddress parses "street, postal_code, city, country".
func getOrCreateAddress(raw string, actorID uint, addresses repository.AddressRepository) (*models.Address, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%q must be \"street, postal_code, city, country\"", raw)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return addresses.GetOrCreate(&models.Address{
		Street:     parts[0],
		PostalCode: parts[1],
		City:       parts[2],
		Country:    parts[3],
	}, actorID)
}

func getOrCreateArticle(name, price, sku string, actorID uint, articles repository.ArticleRepository) (*models.Article, error) {
	amount, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("article_price %q is not a decimal", price)
	}
	if name == "" || sku == "" {
		return nil, fmt.Errorf("article_name and SKU are required")
	}
	return articles.GetOrCreate(&models.Article{
		Name:  name,
		Price: models.NewPriceFromDecimal(amount),
		SKU:   sku,
	}, actorID)
}
