package helpers

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"testing"

	"github.com/missionconnect/missionconnect/pkg/client"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword generates a 10 character password with a capital and special char
func GeneratePassword() string {
	const (
		lower   = "abcdefghijklmnopqrstuvwxyz"
		upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
		special = "!@#$%^&*"
		numbers = "0123456789"
		all     = lower + upper + special + numbers
	)

	password := make([]byte, 10)
	password[0] = upper[randInt(len(upper))]
	password[1] = special[randInt(len(special))]
	password[2] = numbers[randInt(len(numbers))]

	for i := 3; i < 10; i++ {
		password[i] = all[randInt(len(all))]
	}

	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// UniqueEmail returns an email address that will not collide across
// test runs against the same database.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.test", prefix, randInt(1_000_000_000))
}

// AcquireAccount registers (or logs in, when the account exists) against
// a running server and returns an authenticated client.
func AcquireAccount(t *testing.T, baseURL, name, email, password string) *client.Client {
	t.Helper()
	ctx := context.Background()

	api := client.New(baseURL, "")
	auth, err := api.Register(ctx, name, email, password)
	if err != nil {
		t.Logf("Register failed (might already exist): %v", err)
		auth, err = api.Login(ctx, email, password)
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
	}

	if auth.Token == "" {
		t.Fatal("Access token is empty")
	}

	return client.New(baseURL, auth.Token)
}
