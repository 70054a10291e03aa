// Package otp implements phone verification codes: generation, SMS delivery,
// and timed invalidation.
package otp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/DeepaShriSG/EcomBE/models"
	"github.com/DeepaShriSG/EcomBE/notify"
	"github.com/DeepaShriSG/EcomBE/store"
)

const (
	codeLength = 6
	// TTL is how long a code stays valid after it is sent.
	TTL = 10 * time.Minute
	// countryCode is prefixed to stored phone numbers before dispatch.
	countryCode = "+91"
)

// GenerateCode returns a 6-digit numeric code. Not cryptographically hardened;
// the code is short-lived and rate-limited by SMS delivery.
func GenerateCode() string {
	var b strings.Builder
	for i := 0; i < codeLength; i++ {
		fmt.Fprintf(&b, "%d", rand.Intn(10))
	}
	return b.String()
}

// Service sends codes and clears them after TTL. Each user has at most one
// pending clear; issuing a new code cancels the previous timer.
type Service struct {
	users  store.UserStore
	sms    notify.Sender
	sender string
	ttl    time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewService(users store.UserStore, sms notify.Sender, sender string) *Service {
	return &Service{
		users:  users,
		sms:    sms,
		sender: sender,
		ttl:    TTL,
		timers: make(map[string]*time.Timer),
	}
}

// Send generates a code, delivers it by SMS, and persists it on the user.
// The code is only persisted when the provider accepted the message.
func (s *Service) Send(ctx context.Context, user *models.User) (string, error) {
	code := GenerateCode()
	text := fmt.Sprintf("Hello, Your OTP to verify your phone number is: %s", code)
	if err := s.sms.Send(s.sender, countryCode+user.PhoneNumber, text); err != nil {
		return "", err
	}

	if err := s.users.SetOTP(ctx, user.ID, code); err != nil {
		return "", err
	}

	s.scheduleClear(user.ID)
	return code, nil
}

func (s *Service) scheduleClear(userID primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userID.Hex()
	if t, ok := s.timers[key]; ok {
		t.Stop()
	}
	s.timers[key] = time.AfterFunc(s.ttl, func() {
		s.mu.Lock()
		delete(s.timers, key)
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.users.ClearOTP(ctx, userID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("Failed to clear OTP for user %s: %v", key, err)
			return
		}
		log.Printf("OTP for user %s expired and cleared", key)
	})
}

// Close stops all pending clear timers.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, t := range s.timers {
		t.Stop()
		delete(s.timers, key)
	}
}
