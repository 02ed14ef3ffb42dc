// Package redis stores pending one-time codes in Redis so they survive
// restarts and are shared between instances.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/nextelligentia/leadops/internal/domain"
)

const keyPrefix = "otp:"

// consumeAttempts bounds retries when another client touches the key between
// WATCH and EXEC.
const consumeAttempts = 3

// expiredGrace keeps an entry readable after its expiry so verification can
// report ErrCodeExpired instead of ErrCodeNotFound.
const expiredGrace = time.Hour

type OTPStore struct {
	client *goredis.Client
	now    func() time.Time
}

func NewOTPStore(client *goredis.Client) *OTPStore {
	return &OTPStore{client: client, now: time.Now}
}

// NewClient parses a redis:// URL and verifies the server answers.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(accountID string) string {
	return keyPrefix + accountID
}

func (s *OTPStore) Put(ctx context.Context, accountID string, code domain.PendingCode) error {
	payload, err := json.Marshal(code)
	if err != nil {
		return fmt.Errorf("marshal pending code: %w", err)
	}
	ttl := code.ExpiresAt.Sub(s.now()) + expiredGrace
	if ttl <= 0 {
		ttl = expiredGrace
	}
	if err := s.client.Set(ctx, key(accountID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store pending code: %w", err)
	}
	return nil
}

func (s *OTPStore) Get(ctx context.Context, accountID string) (domain.PendingCode, error) {
	return decode(s.client.Get(ctx, key(accountID)))
}

func (s *OTPStore) Delete(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, key(accountID)).Err(); err != nil {
		return fmt.Errorf("delete pending code: %w", err)
	}
	return nil
}

// Consume reads, checks and deletes the entry inside a WATCH/MULTI
// transaction, so a code is accepted at most once across instances.
func (s *OTPStore) Consume(ctx context.Context, accountID, code string, now time.Time) error {
	k := key(accountID)
	for range consumeAttempts {
		var outcome error
		err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
			pending, err := decode(tx.Get(ctx, k))
			if err != nil {
				return err
			}
			outcome = pending.Match(now, code)
			if errors.Is(outcome, domain.ErrCodeMismatch) {
				return nil
			}
			_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
				pipe.Del(ctx, k)
				return nil
			})
			return err
		}, k)
		switch {
		case errors.Is(err, goredis.TxFailedErr):
			continue
		case errors.Is(err, domain.ErrCodeNotFound):
			return domain.ErrCodeNotFound
		case err != nil:
			return fmt.Errorf("consume pending code: %w", err)
		}
		return outcome
	}
	return fmt.Errorf("consume pending code: %w", goredis.TxFailedErr)
}

func decode(cmd *goredis.StringCmd) (domain.PendingCode, error) {
	raw, err := cmd.Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.PendingCode{}, domain.ErrCodeNotFound
		}
		return domain.PendingCode{}, fmt.Errorf("load pending code: %w", err)
	}

	var code domain.PendingCode
	if err := json.Unmarshal(raw, &code); err != nil {
		return domain.PendingCode{}, fmt.Errorf("decode pending code: %w", err)
	}
	return code, nil
}
