package repository

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/models"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := models.Open("sqlite", dsn, gormlogger.Silent)
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, title string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:    title,
		Price:    models.NewMoney("999"),
		Discount: 10,
		Stock:    stock,
		Category: constants.CategoryMen,
		Images: []models.Image{
			{URL: "https://cdn.example.com/" + title + "-side.jpg"},
			{URL: "https://cdn.example.com/" + title + "-front.jpg", IsPrimary: true},
		},
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductDecrementStockGuard(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "kurta", 3)

	affected, err := repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	affected, err = repo.DecrementStock(product.ID, 2)
	if err != nil {
		t.Fatalf("second decrement failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement beyond stock should affect 0 rows, got %d", affected)
	}

	if _, err := repo.IncrementStock(product.ID, 4); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	reloaded, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 5 {
		t.Fatalf("stock want 5 got %d", reloaded.Stock)
	}
}

func TestProductListWithDetailsOrdersPrimaryImageFirst(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewProductRepository(db)
	product := createTestProduct(t, db, "saree", 1)
	if err := db.Create(&models.Highlight{ProductID: product.ID, Key: "Fabric", Value: "Silk"}).Error; err != nil {
		t.Fatalf("create highlight failed: %v", err)
	}

	products, err := repo.ListWithDetails()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("products want 1 got %d", len(products))
	}
	if len(products[0].Images) != 2 || !products[0].Images[0].IsPrimary {
		t.Fatalf("primary image should be first: %+v", products[0].Images)
	}
	if len(products[0].Highlights) != 1 {
		t.Fatalf("highlights want 1 got %d", len(products[0].Highlights))
	}

	missing, err := repo.GetByID(9999)
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing product should be nil")
	}
}

func TestCartUniqueIndexRejectsDuplicatePair(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewCartRepository(db)
	product := createTestProduct(t, db, "jeans", 5)

	if err := repo.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}); err != nil {
		t.Fatalf("create cart item failed: %v", err)
	}
	if err := repo.Create(&models.CartItem{UserID: 1, ProductID: product.ID, Quantity: 1}); err == nil {
		t.Fatalf("duplicate (user, product) should be rejected by the unique index")
	}

	item, err := repo.GetByUserAndProduct(1, product.ID)
	if err != nil || item == nil {
		t.Fatalf("lookup failed: item=%v err=%v", item, err)
	}
	other, err := repo.GetByIDAndUser(item.ID, 2)
	if err != nil {
		t.Fatalf("lookup by other user failed: %v", err)
	}
	if other != nil {
		t.Fatalf("cart item must not be visible to another user")
	}

	affected, err := repo.DeleteByIDAndUser(item.ID, 2)
	if err != nil {
		t.Fatalf("delete by other user failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("other user must not delete the line")
	}
	if err := repo.ClearByUser(1); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	items, err := repo.ListByUser(1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty, got %d", len(items))
	}
}

func TestOrderUpdateStatusUnlessBlocked(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	product := createTestProduct(t, db, "blazer", 5)

	order := &models.Order{
		UserID:      7,
		ProductID:   product.ID,
		Quantity:    1,
		Expected:    time.Now(),
		Total:       models.NewMoney("899.10"),
		PaymentMode: constants.PaymentModeCOD,
		Status:      constants.OrderStatusCheckoutPending,
	}
	if err := repo.Create(order); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	affected, err := repo.UpdateStatusUnless(order.ID, constants.OrderStatusCancelled, constants.NonCancellableOrderStatuses)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("first cancel should affect 1 row, got %d", affected)
	}
	affected, err = repo.UpdateStatusUnless(order.ID, constants.OrderStatusCancelled, constants.NonCancellableOrderStatuses)
	if err != nil {
		t.Fatalf("second cancel failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("second cancel should affect 0 rows, got %d", affected)
	}

	got, err := repo.GetByIDAndUser(order.ID, 7)
	if err != nil || got == nil {
		t.Fatalf("get order failed: order=%v err=%v", got, err)
	}
	if got.Product == nil || got.Product.PrimaryImageURL() == "" {
		t.Fatalf("order should carry product with images")
	}
	foreign, err := repo.GetByIDAndUser(order.ID, 8)
	if err != nil {
		t.Fatalf("get foreign order failed: %v", err)
	}
	if foreign != nil {
		t.Fatalf("order must not be visible to another user")
	}
}

func TestUserUpsertAddressKeepsSingleRow(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewUserRepository(db)

	user := &models.User{Name: "Asha", Email: "asha@example.com", Password: "x", Role: constants.RoleCustomer}
	if err := repo.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := repo.UpsertAddress(&models.Address{UserID: user.ID, State: "Kerala", City: "Kochi", Pincode: "682001", AddressLine: "MG Road"}); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if err := repo.UpsertAddress(&models.Address{UserID: user.ID, State: "Kerala", City: "Thrissur", Pincode: "680001", AddressLine: "Round South"}); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count addresses failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("address rows want 1 got %d", count)
	}
	loaded, err := repo.GetByIDWithAddress(user.ID)
	if err != nil || loaded == nil || loaded.Address == nil {
		t.Fatalf("load user with address failed: user=%v err=%v", loaded, err)
	}
	if loaded.Address.City != "Thrissur" {
		t.Fatalf("address city want Thrissur got %s", loaded.Address.City)
	}
}

func TestReviewCountBetween(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewReviewRepository(db)
	product := createTestProduct(t, db, "scarf", 2)
	user := &models.User{Name: "Ravi", Email: "ravi@example.com", Password: "x", Role: constants.RoleCustomer}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	for _, createdAt := range []time.Time{yesterday, now} {
		if err := repo.Create(&models.Review{UserID: user.ID, ProductID: product.ID, Rating: 4, CreatedAt: createdAt}); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
	}

	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	count, err := repo.CountByUserAndProductBetween(user.ID, product.ID, start, end)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	var latest models.Review
	if err := db.Order("id DESC").First(&latest).Error; err != nil {
		t.Fatalf("load latest failed: %v", err)
	}
	loaded, err := repo.GetByIDWithRelations(latest.ID)
	if err != nil || loaded == nil {
		t.Fatalf("get review failed: review=%v err=%v", loaded, err)
	}
	if loaded.User == nil || loaded.User.Name != "Ravi" {
		t.Fatalf("review should carry author name")
	}
	if loaded.Product == nil || loaded.Product.Title != "scarf" {
		t.Fatalf("review should carry product title")
	}
}
