package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DeepaShriSG/EcomBE/config"
	"github.com/DeepaShriSG/EcomBE/middleware"
	"github.com/DeepaShriSG/EcomBE/models"
	"github.com/DeepaShriSG/EcomBE/payment"
	"github.com/DeepaShriSG/EcomBE/store"
	"github.com/DeepaShriSG/EcomBE/utils"
)

type fakeUserStore struct {
	usersByEmail map[string]*models.User
	usersByPhone map[string]*models.User
	created      []*models.User
	cartAdds     []models.CartItem
	completed    []models.Order
	passwords    map[string]string
	otps         map[string]string
	fulfilledIDs map[string]bool
	toggleAdded  bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		usersByEmail: make(map[string]*models.User),
		usersByPhone: make(map[string]*models.User),
		passwords:    make(map[string]string),
		otps:         make(map[string]string),
		fulfilledIDs: make(map[string]bool),
	}
}

func (f *fakeUserStore) add(u *models.User) *models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.usersByEmail[u.Email] = u
	f.usersByPhone[u.PhoneNumber] = u
	return u
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := f.usersByEmail[user.Email]; ok {
		return fmt.Errorf("create user: %w", store.ErrDuplicate)
	}
	f.add(user)
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.usersByEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	if u, ok := f.usersByPhone[phone]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindAll(_ context.Context) ([]models.User, error) {
	var users []models.User
	for _, u := range f.usersByEmail {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUserStore) AddToCart(_ context.Context, _ primitive.ObjectID, item models.CartItem) error {
	f.cartAdds = append(f.cartAdds, item)
	return nil
}

func (f *fakeUserStore) SetPassword(_ context.Context, userID primitive.ObjectID, hash string) error {
	f.passwords[userID.Hex()] = hash
	return nil
}

func (f *fakeUserStore) SetOTP(_ context.Context, userID primitive.ObjectID, code string) error {
	f.otps[userID.Hex()] = code
	return nil
}

func (f *fakeUserStore) ClearOTP(_ context.Context, userID primitive.ObjectID) error {
	delete(f.otps, userID.Hex())
	return nil
}

func (f *fakeUserStore) HasOrderWithPayment(_ context.Context, _ primitive.ObjectID, paymentID string) (bool, error) {
	return f.fulfilledIDs[paymentID], nil
}

func (f *fakeUserStore) CompleteOrder(_ context.Context, _ primitive.ObjectID, order models.Order) error {
	f.completed = append(f.completed, order)
	f.fulfilledIDs[order.PaymentID] = true
	return nil
}

func (f *fakeUserStore) ToggleWishlist(_ context.Context, _ primitive.ObjectID, _ primitive.ObjectID) (bool, error) {
	return f.toggleAdded, nil
}

type reserveCall struct {
	Product  primitive.ObjectID
	Quantity int
}

type fakeProductStore struct {
	products     map[string]*models.Product
	created      []*models.Product
	deleted      []string
	reserveCalls []reserveCall
	reserveErrs  map[string]error
	filterResult *models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{
		products:    make(map[string]*models.Product),
		reserveErrs: make(map[string]error),
	}
}

func (f *fakeProductStore) add(p *models.Product) *models.Product {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.products[p.ID.Hex()] = p
	return p
}

func (f *fakeProductStore) Create(_ context.Context, product *models.Product) error {
	for _, p := range f.products {
		if p.ProductCode == product.ProductCode {
			return fmt.Errorf("create product: %w", store.ErrDuplicate)
		}
	}
	f.add(product)
	f.created = append(f.created, product)
	return nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := f.products[id.Hex()]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeProductStore) FindAll(_ context.Context) ([]models.Product, error) {
	var products []models.Product
	for _, p := range f.products {
		products = append(products, *p)
	}
	return products, nil
}

func (f *fakeProductStore) Update(_ context.Context, id primitive.ObjectID, upd store.ProductUpdate) (*models.Product, error) {
	p, ok := f.products[id.Hex()]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Price != nil {
		p.Price = *upd.Price
	}
	if upd.Stock != nil {
		p.Stock = *upd.Stock
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id.Hex()]; !ok {
		return store.ErrNotFound
	}
	delete(f.products, id.Hex())
	f.deleted = append(f.deleted, id.Hex())
	return nil
}

func (f *fakeProductStore) Filter(_ context.Context, _ store.ProductFilter) (*models.Product, error) {
	if f.filterResult == nil {
		return nil, store.ErrNotFound
	}
	return f.filterResult, nil
}

func (f *fakeProductStore) ReserveStock(_ context.Context, id primitive.ObjectID, _ primitive.ObjectID, quantity int) error {
	if err, ok := f.reserveErrs[id.Hex()]; ok {
		return err
	}
	p, ok := f.products[id.Hex()]
	if !ok {
		return store.ErrNotFound
	}
	if p.Stock < quantity {
		return store.ErrInsufficientStock
	}
	p.Stock -= quantity
	f.reserveCalls = append(f.reserveCalls, reserveCall{Product: id, Quantity: quantity})
	return nil
}

type capturedSession struct {
	Email string
	Items []payment.LineItem
}

type fakeProvider struct {
	sessions  []capturedSession
	session   *payment.Session
	createErr error
	event     *payment.Event
	verifyErr error
}

func (f *fakeProvider) CreateSession(_ context.Context, email string, items []payment.LineItem) (*payment.Session, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.sessions = append(f.sessions, capturedSession{Email: email, Items: items})
	if f.session != nil {
		return f.session, nil
	}
	return &payment.Session{ID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, nil
}

func (f *fakeProvider) VerifyEvent(_ []byte, _ string) (*payment.Event, error) {
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	return f.event, nil
}

type sentSMS struct {
	From, To, Text string
}

type fakeSender struct {
	sent []sentSMS
	err  error
}

func (f *fakeSender) Send(from, to, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentSMS{From: from, To: to, Text: text})
	return nil
}

type testEnv struct {
	handler  *Handler
	users    *fakeUserStore
	products *fakeProductStore
	payments *fakeProvider
	sms      *fakeSender
	echo     *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserStore()
	products := newFakeProductStore()
	payments := &fakeProvider{}
	sms := &fakeSender{}
	cfg := &config.Config{
		JWTSecret:    "test-secret",
		TokenExpires: time.Hour,
		SaltRounds:   4,
		SMSSender:    "ECOM",
		Domain:       "http://localhost:3000",
	}
	return &testEnv{
		handler:  New(users, products, payments, sms, nil, cfg),
		users:    users,
		products: products,
		payments: payments,
		sms:      sms,
		echo:     echo.New(),
	}
}

func (env *testEnv) request(t *testing.T, method, target string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.echo.NewContext(req, rec), rec
}

func (env *testEnv) authed(c echo.Context, email, role string) {
	c.Set(middleware.ClaimsKey, &utils.Claims{
		Name:  "Tester",
		Email: email,
		Role:  role,
	})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}
