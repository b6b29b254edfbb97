package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type serviceFixture struct {
	db       *gorm.DB
	cfg      *config.Config
	users    *repository.GormUserRepository
	products *repository.GormProductRepository
	carts    *repository.GormCartRepository
	orders   *repository.GormOrderRepository
	reviews  *repository.GormReviewRepository
}

func setupServiceFixture(t *testing.T) *serviceFixture {
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
	cfg := config.Default()
	cfg.JWT.SecretKey = "test-secret-key-with-enough-length"
	cfg.Security.BcryptCost = bcrypt.MinCost
	return &serviceFixture{
		db:       db,
		cfg:      cfg,
		users:    repository.NewUserRepository(db),
		products: repository.NewProductRepository(db),
		carts:    repository.NewCartRepository(db),
		orders:   repository.NewOrderRepository(db),
		reviews:  repository.NewReviewRepository(db),
	}
}

func (f *serviceFixture) product(t *testing.T, title, price string, discount, stock, delivery int) *models.Product {
	t.Helper()
	product := &models.Product{
		Title:    title,
		Price:    models.NewMoney(price),
		Discount: discount,
		Stock:    stock,
		Category: constants.CategoryWomen,
		Delivery: delivery,
		Images:   []models.Image{{URL: "https://cdn.example.com/" + title + ".jpg", IsPrimary: true}},
	}
	if err := f.db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func (f *serviceFixture) customer(t *testing.T, email string, withMobile, withAddress bool) *models.User {
	t.Helper()
	user := &models.User{Name: "Meera", Email: email, Password: "x", Role: constants.RoleCustomer}
	if withMobile {
		mobile := "+919876543210"
		user.MobNo = &mobile
	}
	if err := f.users.Create(user); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if withAddress {
		if err := f.users.UpsertAddress(&models.Address{UserID: user.ID, State: "Goa", City: "Panaji", Pincode: "403001", AddressLine: "18th June Road"}); err != nil {
			t.Fatalf("create address failed: %v", err)
		}
	}
	return user
}

func (f *serviceFixture) stockOf(t *testing.T, productID uint) int {
	t.Helper()
	product, err := f.products.GetByID(productID)
	if err != nil || product == nil {
		t.Fatalf("load product failed: product=%v err=%v", product, err)
	}
	return product.Stock
}

func TestSignupRejectsWeakPasswordBeforePersisting(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewAuthService(f.cfg, f.users)

	_, _, _, err := svc.Signup(SignupInput{Name: "Anu", Email: "anu@example.com", Password: "weakpass"})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
	var policyErr *PasswordPolicyError
	if !errors.As(err, &policyErr) || len(policyErr.Violations) != 3 {
		t.Fatalf("want 3 violations got %+v", policyErr)
	}

	var count int64
	if err := f.db.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("weak password must not persist a user, got %d", count)
	}
}

func TestSignupAndSignin(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewAuthService(f.cfg, f.users)

	user, token, expiresAt, err := svc.Signup(SignupInput{Name: "Anu", Email: "  Anu@Example.com ", Password: "Str0ng!Pass", MobNo: "+919812345678"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if user.Email != "anu@example.com" || user.Role != constants.RoleCustomer {
		t.Fatalf("unexpected user: %+v", user)
	}
	if user.Password == "Str0ng!Pass" {
		t.Fatalf("password must be hashed")
	}
	if time.Until(expiresAt) < 167*time.Hour {
		t.Fatalf("token should live about 7 days, expires at %s", expiresAt)
	}
	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.ID != user.ID || claims.Role != constants.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, _, _, err := svc.Signup(SignupInput{Name: "Anu", Email: "anu@example.com", Password: "Str0ng!Pass"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("want ErrEmailExists got %v", err)
	}
	if _, _, _, err := svc.Signin("nobody@example.com", "Str0ng!Pass"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound got %v", err)
	}
	if _, _, _, err := svc.Signin("anu@example.com", "Wrong!Pass1"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("want ErrInvalidPassword got %v", err)
	}
	signedIn, _, _, err := svc.Signin("ANU@example.com", "Str0ng!Pass")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	if signedIn.ID != user.ID {
		t.Fatalf("signin returned another user")
	}
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewAuthService(f.cfg, f.users)
	token, _, err := svc.GenerateToken(&models.User{ID: 3, Email: "x@example.com", Role: constants.RoleCustomer})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	otherCfg := config.Default()
	otherCfg.JWT.SecretKey = "another-secret-key-entirely"
	other := NewAuthService(otherCfg, f.users)
	if _, err := other.ParseToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken got %v", err)
	}
	if _, err := svc.ParseToken("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken for garbage got %v", err)
	}
}

func TestCartAddDuplicateAndQuantityUpdate(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewCartService(f.carts, f.products, f.orders)
	user := f.customer(t, "cart@example.com", false, false)
	product := f.product(t, "dupatta", "499", 0, 4, 3)

	if _, err := svc.Add(user.ID, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	item, err := svc.Add(user.ID, product.ID, 0)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if item.Quantity != 1 {
		t.Fatalf("default quantity want 1 got %d", item.Quantity)
	}
	if _, err := svc.Add(user.ID, product.ID, 1); !errors.Is(err, ErrCartItemExists) {
		t.Fatalf("want ErrCartItemExists got %v", err)
	}

	updated, err := svc.UpdateQuantity(user.ID, item.ID, 3)
	if err != nil || updated == nil || updated.Quantity != 3 {
		t.Fatalf("update failed: item=%+v err=%v", updated, err)
	}
	if _, err := svc.UpdateQuantity(user.ID+1, item.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("foreign update want ErrCartItemNotFound got %v", err)
	}
	removed, err := svc.UpdateQuantity(user.ID, item.ID, 0)
	if err != nil || removed != nil {
		t.Fatalf("quantity 0 should delete: item=%+v err=%v", removed, err)
	}
	if err := svc.Remove(user.ID, item.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("remove of deleted line want ErrCartItemNotFound got %v", err)
	}
}

func TestOrderAllCreatesOrdersAndClearsCart(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewCartService(f.carts, f.products, f.orders)
	fixedNow := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	svc.now = func() time.Time { return fixedNow }
	user := f.customer(t, "checkout@example.com", false, false)
	kurti := f.product(t, "kurti", "1000", 10, 5, 4)
	shawl := f.product(t, "shawl", "250.50", 0, 2, 2)

	if _, err := svc.Add(user.ID, kurti.ID, 2); err != nil {
		t.Fatalf("add kurti failed: %v", err)
	}
	if _, err := svc.Add(user.ID, shawl.ID, 2); err != nil {
		t.Fatalf("add shawl failed: %v", err)
	}

	orders, err := svc.OrderAll(user.ID)
	if err != nil {
		t.Fatalf("order all failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders want 2 got %d", len(orders))
	}
	totals := map[uint]string{}
	for _, order := range orders {
		if order.Status != constants.OrderStatusCheckoutPending || order.PaymentMode != constants.PaymentModeCOD {
			t.Fatalf("unexpected order: %+v", order)
		}
		totals[order.ProductID] = order.Total.String()
		if order.ProductID == kurti.ID && !order.Expected.Equal(fixedNow.AddDate(0, 0, 4)) {
			t.Fatalf("expected date want now+4d got %s", order.Expected)
		}
	}
	if totals[kurti.ID] != "1800.00" || totals[shawl.ID] != "501.00" {
		t.Fatalf("unexpected totals: %+v", totals)
	}
	if f.stockOf(t, kurti.ID) != 3 || f.stockOf(t, shawl.ID) != 0 {
		t.Fatalf("stock not decremented")
	}
	items, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("cart should be empty after checkout, got %d", len(items))
	}

	if _, err := svc.OrderAll(user.ID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("want ErrCartEmpty got %v", err)
	}
}

func TestOrderAllRollsBackOnShortStock(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewCartService(f.carts, f.products, f.orders)
	user := f.customer(t, "short@example.com", false, false)
	plenty := f.product(t, "plenty", "100", 0, 10, 1)
	scarce := f.product(t, "scarce", "100", 0, 1, 1)

	if _, err := svc.Add(user.ID, plenty.ID, 2); err != nil {
		t.Fatalf("add plenty failed: %v", err)
	}
	if _, err := svc.Add(user.ID, scarce.ID, 3); err != nil {
		t.Fatalf("add scarce failed: %v", err)
	}

	_, err := svc.OrderAll(user.ID)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("want ErrInsufficientStock got %v", err)
	}
	var stockErr *StockError
	if !errors.As(err, &stockErr) || stockErr.ProductTitle != "scarce" {
		t.Fatalf("stock error should name the product: %v", err)
	}

	if f.stockOf(t, plenty.ID) != 10 || f.stockOf(t, scarce.ID) != 1 {
		t.Fatalf("stock must be untouched after a failed checkout")
	}
	var orderCount int64
	if err := f.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("no order may survive a failed checkout, got %d", orderCount)
	}
	items, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("cart must be intact, got %d", len(items))
	}
}

// failingStockRepository fails the nth DecrementStock call, counted across transactions
type failingStockRepository struct {
	repository.ProductRepository
	failAt int
	calls  *int
}

func (r failingStockRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	*r.calls++
	if *r.calls == r.failAt {
		return 0, errors.New("disk full")
	}
	return r.ProductRepository.DecrementStock(productID, quantity)
}

func (r failingStockRepository) WithTx(tx *gorm.DB) repository.ProductRepository {
	return failingStockRepository{ProductRepository: r.ProductRepository.WithTx(tx), failAt: r.failAt, calls: r.calls}
}

func TestOrderAllRollsBackAfterPartialWrites(t *testing.T) {
	f := setupServiceFixture(t)
	calls := 0
	products := failingStockRepository{ProductRepository: f.products, failAt: 2, calls: &calls}
	svc := NewCartService(f.carts, products, f.orders)
	user := f.customer(t, "partial@example.com", false, false)
	first := f.product(t, "kurta", "100", 0, 5, 1)
	second := f.product(t, "dupatta", "100", 0, 5, 1)

	if _, err := svc.Add(user.ID, first.ID, 2); err != nil {
		t.Fatalf("add first failed: %v", err)
	}
	if _, err := svc.Add(user.ID, second.ID, 1); err != nil {
		t.Fatalf("add second failed: %v", err)
	}

	if _, err := svc.OrderAll(user.ID); err == nil || err.Error() != "disk full" {
		t.Fatalf("want the storage error back, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("first line should have been written before the failure, decrements=%d", calls)
	}

	if got := f.stockOf(t, first.ID); got != 5 {
		t.Fatalf("first stock must roll back to 5, got %d", got)
	}
	if got := f.stockOf(t, second.ID); got != 5 {
		t.Fatalf("second stock must stay 5, got %d", got)
	}
	var orderCount int64
	if err := f.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("orders written before the failure must roll back, got %d", orderCount)
	}
	items, err := svc.List(user.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("cart must be intact, got %d", len(items))
	}
}

func TestPasswordPolicyCharacterClassesAndLength(t *testing.T) {
	policy := config.Default().Security.PasswordPolicy

	cases := []struct {
		name       string
		password   string
		violations int
	}{
		{name: "strong", password: "Str0ng!Pass"},
		{name: "non ascii upper and digit", password: "\u00c9l\u0663gant!x", violations: 2},
		{name: "exactly 72 bytes", password: "Str0ng!Pass" + strings.Repeat("a", 61)},
		{name: "over 72 bytes", password: "Str0ng!Pass" + strings.Repeat("a", 70), violations: 1},
	}
	for _, tc := range cases {
		err := validatePassword(policy, tc.password)
		if tc.violations == 0 {
			if err != nil {
				t.Fatalf("%s: want valid got %v", tc.name, err)
			}
			continue
		}
		var policyErr *PasswordPolicyError
		if !errors.As(err, &policyErr) || len(policyErr.Violations) != tc.violations {
			t.Fatalf("%s: want %d violations got %v", tc.name, tc.violations, err)
		}
	}
}

func TestSignupRejectsPasswordOverBcryptLimit(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewAuthService(f.cfg, f.users)

	_, _, _, err := svc.Signup(SignupInput{Name: "Anu", Email: "long@example.com", Password: "Str0ng!Pass" + strings.Repeat("a", 70)})
	if !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("want ErrWeakPassword got %v", err)
	}
}

func TestCreateOrderCheckOrder(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewOrderService(f.orders, f.products, f.users)
	product := f.product(t, "lehenga", "2000", 25, 2, 5)

	bare := f.customer(t, "bare@example.com", false, false)
	mobileOnly := f.customer(t, "mobile@example.com", true, false)
	ready := f.customer(t, "ready@example.com", true, true)

	cases := []struct {
		name   string
		userID uint
		input  CreateOrderInput
		want   error
	}{
		{"missing product", ready.ID, CreateOrderInput{ProductID: 999, Quantity: 1}, ErrProductNotFound},
		{"stock before user", 999, CreateOrderInput{ProductID: product.ID, Quantity: 3}, ErrInsufficientStock},
		{"missing user", 999, CreateOrderInput{ProductID: product.ID, Quantity: 1}, ErrUserNotFound},
		{"missing mobile", bare.ID, CreateOrderInput{ProductID: product.ID, Quantity: 1}, ErrMobileRequired},
		{"missing address", mobileOnly.ID, CreateOrderInput{ProductID: product.ID, Quantity: 1}, ErrAddressRequired},
		{"bad date", ready.ID, CreateOrderInput{ProductID: product.ID, Quantity: 1, Expected: "next week"}, ErrInvalidExpectedDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(tc.userID, tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}

	placement, err := svc.Create(ready.ID, CreateOrderInput{ProductID: product.ID, Quantity: 2, Expected: "2026-05-01"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if placement.Order.Status != constants.OrderStatusPending || placement.Order.Total.String() != "3000.00" {
		t.Fatalf("unexpected order: %+v", placement.Order)
	}
	if placement.Order.PaymentMode != constants.PaymentModeCOD {
		t.Fatalf("payment mode should default to COD")
	}
	if placement.DeliveryAddress == nil || placement.DeliveryAddress.City != "Panaji" || placement.Mobile != "+919876543210" {
		t.Fatalf("placement should carry address and mobile: %+v", placement)
	}
	if f.stockOf(t, product.ID) != 0 {
		t.Fatalf("stock want 0 got %d", f.stockOf(t, product.ID))
	}
}

func TestCancelOrderRestoresStockOnce(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewOrderService(f.orders, f.products, f.users)
	product := f.product(t, "sherwani", "5000", 0, 3, 7)
	user := f.customer(t, "cancel@example.com", true, true)

	placement, err := svc.Create(user.ID, CreateOrderInput{ProductID: product.ID, Quantity: 2, PaymentMode: "online"})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if placement.Order.PaymentMode != constants.PaymentModeOnline {
		t.Fatalf("payment mode want ONLINE got %s", placement.Order.PaymentMode)
	}
	if f.stockOf(t, product.ID) != 1 {
		t.Fatalf("stock want 1 after order")
	}

	if _, err := svc.Cancel(user.ID+100, placement.Order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign cancel want ErrOrderNotFound got %v", err)
	}
	cancelled, err := svc.Cancel(user.ID, placement.Order.ID)
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("status want Cancelled got %s", cancelled.Status)
	}
	if f.stockOf(t, product.ID) != 3 {
		t.Fatalf("stock want 3 after cancel got %d", f.stockOf(t, product.ID))
	}

	if _, err := svc.Cancel(user.ID, placement.Order.ID); !errors.Is(err, ErrOrderNotCancellable) {
		t.Fatalf("second cancel want ErrOrderNotCancellable got %v", err)
	}
	if f.stockOf(t, product.ID) != 3 {
		t.Fatalf("second cancel must not restore stock again")
	}
}

func TestCancelRejectsShippedAndAcceptsCheckoutPending(t *testing.T) {
	if IsOrderCancellable("shipped") || IsOrderCancellable(constants.OrderStatusDelivered) {
		t.Fatalf("shipped and delivered orders must not be cancellable")
	}
	if !IsOrderCancellable(constants.OrderStatusCheckoutPending) || !IsOrderCancellable(constants.OrderStatusPending) {
		t.Fatalf("pending orders must be cancellable")
	}
}

func TestReviewDailyLimit(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewReviewService(f.reviews, f.products, 2)
	product := f.product(t, "anarkali", "1500", 0, 5, 3)
	user := f.customer(t, "reviewer@example.com", false, false)

	day := time.Date(2026, 4, 2, 9, 0, 0, 0, time.Local)
	svc.SetClock(func() time.Time { return day })

	for i := 0; i < 2; i++ {
		review, err := svc.Create(user.ID, CreateReviewInput{ProductID: product.ID, Rating: 5, Feedback: "lovely"})
		if err != nil {
			t.Fatalf("review %d failed: %v", i, err)
		}
		if review.User == nil || review.User.Name != "Meera" || review.Product == nil || review.Product.Title != "anarkali" {
			t.Fatalf("review should be joined to user and product: %+v", review)
		}
	}

	_, err := svc.Create(user.ID, CreateReviewInput{ProductID: product.ID, Rating: 4})
	if !errors.Is(err, ErrReviewLimitReached) {
		t.Fatalf("third review want ErrReviewLimitReached got %v", err)
	}
	if err.Error() != "Rate limit exceeded: You can only add 2 reviews per product per day" {
		t.Fatalf("unexpected limit message: %s", err.Error())
	}

	svc.SetClock(func() time.Time { return day.AddDate(0, 0, 1) })
	if _, err := svc.Create(user.ID, CreateReviewInput{ProductID: product.ID, Rating: 3}); err != nil {
		t.Fatalf("next day review failed: %v", err)
	}
	if _, err := svc.Create(user.ID, CreateReviewInput{ProductID: 999, Rating: 3}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
}

func TestLocalDayWindowBounds(t *testing.T) {
	at := time.Date(2026, 1, 15, 23, 30, 0, 0, time.Local)
	start, end := localDayWindow(at)
	if start.Hour() != 0 || start.Minute() != 0 || start.Day() != 15 {
		t.Fatalf("unexpected start: %s", start)
	}
	if end.Day() != 15 || end.Hour() != 23 || end.Minute() != 59 || end.Nanosecond() != int(999*time.Millisecond) {
		t.Fatalf("unexpected end: %s", end)
	}
}

func TestProfileUpdateRequiresMobile(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewProfileService(f.users)
	user := f.customer(t, "profile@example.com", false, false)

	name := "Meera K"
	if _, err := svc.Update(user.ID, UpdateProfileInput{Name: &name, RequireMobile: true}); !errors.Is(err, ErrMobileRequired) {
		t.Fatalf("want ErrMobileRequired got %v", err)
	}
	if _, err := svc.Update(999, UpdateProfileInput{Name: &name}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound got %v", err)
	}

	mobile := "+919000000001"
	updated, err := svc.Update(user.ID, UpdateProfileInput{
		Name:          &name,
		MobNo:         &mobile,
		Address:       &AddressInput{State: "Karnataka", City: "Mysuru", Pincode: "570001", AddressLine: "Sayyaji Rao Road"},
		RequireMobile: true,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != name || !updated.HasMobile() || updated.Address == nil || updated.Address.City != "Mysuru" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	// legacy variant skips the mobile requirement and keeps a single address row
	again, err := svc.Update(user.ID, UpdateProfileInput{Address: &AddressInput{State: "Karnataka", City: "Hubballi", Pincode: "580020", AddressLine: "Lamington Road"}})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if again.Address.City != "Hubballi" || again.Name != name {
		t.Fatalf("partial update lost fields: %+v", again)
	}
	var rows int64
	if err := f.db.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&rows).Error; err != nil {
		t.Fatalf("count addresses failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("address rows want 1 got %d", rows)
	}

	if _, err := svc.UpdatePersonal(999, UpdateProfileInput{Name: &name}); !errors.Is(err, ErrProfileUpdateFailed) || !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("legacy update should wrap the cause in ErrProfileUpdateFailed, got %v", err)
	}
	bare := f.customer(t, "legacy@example.com", false, false)
	if _, err := svc.UpdatePersonal(bare.ID, UpdateProfileInput{Name: &name, RequireMobile: true}); err != nil {
		t.Fatalf("legacy update must not require a mobile number: %v", err)
	}
}

func TestProductListNeverReturnsNilSlices(t *testing.T) {
	f := setupServiceFixture(t)
	svc := NewProductService(f.products)
	f.product(t, "bandhani", "799", 5, 1, 2)

	products, err := svc.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Reviews == nil || products[0].Highlights == nil {
		t.Fatalf("unexpected products: %+v", products)
	}
}
