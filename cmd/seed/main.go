package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/http/binding"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/models"

	"github.com/go-playground/validator/v10"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	var file string
	flag.StringVar(&file, "file", "", "JSON array of products to seed instead of the built-in catalog")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, gormlogger.Warn); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := builtinCatalog()
	if file != "" {
		loaded, err := loadCatalog(file)
		if err != nil {
			stdLog.Fatalf("Failed to read %s: %v", file, err)
		}
		products = loaded
	}

	created, err := models.SeedProducts(models.DB, products)
	if err != nil {
		stdLog.Fatalf("Failed to seed products: %v", err)
	}
	logger.Infow("seed_finished", "created", created, "total", len(products))
}

func loadCatalog(path string) ([]models.Product, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, err
	}
	if err := validateCatalog(products); err != nil {
		return nil, err
	}
	return products, nil
}

// validateCatalog rejects the whole file on the first bad product
func validateCatalog(products []models.Product) error {
	v := validator.New()
	if err := binding.Register(v); err != nil {
		return err
	}
	checks := []struct {
		field string
		value func(p *models.Product) interface{}
		tag   string
	}{
		{"title", func(p *models.Product) interface{} { return p.Title }, "required"},
		{"category", func(p *models.Product) interface{} { return p.Category }, "required,category"},
		{"stock", func(p *models.Product) interface{} { return p.Stock }, "gte=0"},
		{"discount", func(p *models.Product) interface{} { return p.Discount }, "gte=0,lte=100"},
	}
	for i := range products {
		product := &products[i]
		for _, check := range checks {
			if err := v.Var(check.value(product), check.tag); err != nil {
				return fmt.Errorf("product %d (%q): invalid %s", i, product.Title, check.field)
			}
		}
		product.Category = strings.ToLower(strings.TrimSpace(product.Category))
	}
	return nil
}

func builtinCatalog() []models.Product {
	return []models.Product{
		{
			Title:       "Classic White Linen Shirt",
			Description: "Breathable pure linen shirt with a relaxed fit.",
			Price:       models.NewMoney("1499"),
			Discount:    10,
			Stock:       40,
			Category:    constants.CategoryMen,
			Sizes:       "S,M,L,XL",
			Delivery:    4,
			ShipCharge:  models.NewMoney("0"),
			Returnable:  7,
			Images: []models.Image{
				{URL: "https://res.cloudinary.com/whitebirds/image/upload/linen-shirt-front.jpg", IsPrimary: true},
				{URL: "https://res.cloudinary.com/whitebirds/image/upload/linen-shirt-back.jpg"},
			},
			Highlights: []models.Highlight{
				{Key: "Fabric", Value: "100% Linen"},
				{Key: "Fit", Value: "Relaxed"},
			},
		},
		{
			Title:       "Slim Fit Chinos",
			Description: "Stretch cotton chinos for everyday wear.",
			Price:       models.NewMoney("1899"),
			Discount:    15,
			Stock:       25,
			Category:    constants.CategoryMen,
			Sizes:       "30,32,34,36",
			Delivery:    5,
			ShipCharge:  models.NewMoney("49"),
			Returnable:  10,
			Images: []models.Image{
				{URL: "https://res.cloudinary.com/whitebirds/image/upload/chinos.jpg", IsPrimary: true},
			},
			Highlights: []models.Highlight{
				{Key: "Fabric", Value: "98% Cotton, 2% Elastane"},
			},
		},
		{
			Title:       "Floral Wrap Dress",
			Description: "Midi length wrap dress in a soft viscose print.",
			Price:       models.NewMoney("2499"),
			Discount:    20,
			Stock:       18,
			Category:    constants.CategoryWomen,
			Sizes:       "XS,S,M,L",
			Delivery:    3,
			ShipCharge:  models.NewMoney("0"),
			Returnable:  7,
			Images: []models.Image{
				{URL: "https://res.cloudinary.com/whitebirds/image/upload/wrap-dress.jpg", IsPrimary: true},
				{URL: "https://res.cloudinary.com/whitebirds/image/upload/wrap-dress-side.jpg"},
			},
			Highlights: []models.Highlight{
				{Key: "Length", Value: "Midi"},
				{Key: "Fabric", Value: "Viscose"},
			},
		},
		{
			Title:       "Cotton Kurta Set",
			Description: "Hand block printed kurta with matching pants.",
			Price:       models.NewMoney("1999"),
			Discount:    0,
			Stock:       30,
			Category:    constants.CategoryWomen,
			Sizes:       "S,M,L,XL,XXL",
			Delivery:    6,
			ShipCharge:  models.NewMoney("79"),
			Returnable:  0,
			Images: []models.Image{
				{URL: "https://res.cloudinary.com/whitebirds/image/upload/kurta-set.jpg", IsPrimary: true},
			},
			Highlights: []models.Highlight{
				{Key: "Print", Value: "Hand block"},
			},
		},
	}
}
