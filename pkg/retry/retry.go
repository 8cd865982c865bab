// Package retry повторяет операции (подключение к БД) с задержкой между попытками.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"
)

// RetryableFunc - функция, которую можно повторить
type RetryableFunc func(ctx context.Context) error

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent помечает ошибку как не требующую повтора (неверный DSN и т.п.)
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent сообщает, помечена ли ошибка через Permanent
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Retryer выполняет retry логику
type Retryer struct {
	config Config
}

// NewRetryer создает новый Retryer
func NewRetryer(config Config) (*Retryer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}
	return &Retryer{config: config}, nil
}

// Do выполняет функцию, повторяя ее при ошибке
func (r *Retryer) Do(ctx context.Context, fn RetryableFunc) error {
	attempts := 0
	for {
		attempts++

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if IsPermanent(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempts >= max(r.config.MaxAttempts, 1) {
			if attempts == 1 {
				return err
			}
			return fmt.Errorf("max retry attempts (%d) exceeded: %w", attempts, err)
		}

		delay := r.config.Delay(attempts)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempts, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("context cancelled during retry: %w (last error: %v)", ctx.Err(), err)
		}
	}
}

// Delay вычисляет задержку после попытки attempt (с 1)
func (c Config) Delay(attempt int) time.Duration {
	var delay time.Duration

	switch c.Backoff {
	case BackoffConstant:
		delay = c.InitialDelay

	case BackoffLinear:
		// Linear: delay = initial * attempt
		delay = c.InitialDelay * time.Duration(attempt)

	default:
		// Exponential: delay = initial * multiplier^(attempt-1)
		m := c.Multiplier
		if m == 0 {
			m = 2.0
		}
		delay = time.Duration(float64(c.InitialDelay) * math.Pow(m, float64(attempt-1)))
	}

	if c.MaxDelay > 0 && delay > c.MaxDelay {
		delay = c.MaxDelay
	}

	if c.Jitter > 0 {
		jitter := time.Duration(float64(delay) * c.Jitter * (rand.Float64()*2 - 1))
		delay += jitter
		if delay < 0 {
			delay = c.InitialDelay
		}
	}
	return delay
}
