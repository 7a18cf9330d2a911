package ratebook

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planning-aidant/backend/internal/recap"
)

// Redis stores the rates of a session in two hashes whose TTL is renewed on every write.
type Redis struct {
	rdb        *redis.Client
	expiration time.Duration
}

var _ Store = (*Redis)(nil)

func NewRedis(rdb *redis.Client, expiration time.Duration) *Redis {
	return &Redis{rdb: rdb, expiration: expiration}
}

func employeesKey(session string) string { return "rates:" + session + ":employees" }
func clientsKey(session string) string   { return "rates:" + session + ":clients" }

func (r *Redis) Rates(ctx context.Context, session string) (recap.Rates, error) {
	employees, err := r.readHash(ctx, employeesKey(session))
	if err != nil {
		return recap.Rates{}, err
	}
	clients, err := r.readHash(ctx, clientsKey(session))
	if err != nil {
		return recap.Rates{}, err
	}
	return recap.Rates{Employees: employees, Clients: clients}, nil
}

func (r *Redis) SetEmployeeRate(ctx context.Context, session, employeeID string, rate float64) error {
	return r.write(ctx, employeesKey(session), employeeID, rate)
}

func (r *Redis) SetClientRate(ctx context.Context, session, clientID string, rate float64) error {
	return r.write(ctx, clientsKey(session), clientID, rate)
}

func (r *Redis) Reset(ctx context.Context, session string) error {
	return r.rdb.Del(ctx, employeesKey(session), clientsKey(session)).Err()
}

func (r *Redis) write(ctx context.Context, key, field string, rate float64) error {
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, field, strconv.FormatFloat(rate, 'g', -1, 64))
	pipe.Expire(ctx, key, r.expiration)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *Redis) readHash(ctx context.Context, key string) (map[string]float64, error) {
	values, err := r.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]float64, len(values))
	for field, raw := range values {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// a corrupted entry falls back to the default rate
			continue
		}
		out[field] = rate
	}
	return out, nil
}
