package service

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const dummyPassword = "blog-service-dummy-password"

// PasswordHasher hashes and verifies passwords with bcrypt. At most `workers`
// bcrypt operations run at once; callers wait for a slot on their context.
type PasswordHasher struct {
	cost      int
	sem       *semaphore.Weighted
	dummyHash []byte
}

func NewPasswordHasher(cost, workers int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		panic(fmt.Sprintf("hash dummy password: %v", err))
	}

	return &PasswordHasher{
		cost:      cost,
		sem:       semaphore.NewWeighted(int64(workers)),
		dummyHash: dummyHash,
	}
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}

func (h *PasswordHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("wait for hash worker: %w", err)
	}
	defer h.sem.Release(1)

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A malformed hash is a
// mismatch, not an error; the error is only set when ctx ends first.
func (h *PasswordHasher) Verify(ctx context.Context, plaintext, hash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("wait for hash worker: %w", err)
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil, nil
}

// VerifyDummy spends the same work as Verify against the hash built in
// NewPasswordHasher, so an unknown username costs as much as a wrong password.
func (h *PasswordHasher) VerifyDummy(ctx context.Context, plaintext string) error {
	_, err := h.Verify(ctx, plaintext, string(h.dummyHash))
	return err
}
