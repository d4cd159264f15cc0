// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package health reports whether the server is live and ready to accept
// traffic.
package health

import (
	"context"
	"errors"
	"sync/atomic"
)

// Monitor reports its current state of health.
type Monitor interface {
	Healthy(context.Context) (bool, error)
}

// MonitorFunc is an adapter to allow the use of ordinary functions as
// [Monitor]s.
type MonitorFunc func(context.Context) (bool, error)

// Healthy implements the [Monitor] interface.
func (f MonitorFunc) Healthy(ctx context.Context) (bool, error) {
	return f(ctx)
}

// Always returns a [Monitor] which never changes state.
func Always(healthy bool) Monitor {
	return MonitorFunc(func(context.Context) (bool, error) {
		return healthy, nil
	})
}

// Toggle is a [Monitor] which is flipped between healthy and unhealthy.
// The zero value is unhealthy. It is safe for concurrent use.
type Toggle struct {
	healthy atomic.Bool
}

// MarkHealthy switches the state to healthy.
func (t *Toggle) MarkHealthy() {
	t.healthy.Store(true)
}

// MarkUnhealthy switches the state to unhealthy.
func (t *Toggle) MarkUnhealthy() {
	t.healthy.Store(false)
}

// Healthy implements the [Monitor] interface.
func (t *Toggle) Healthy(context.Context) (bool, error) {
	return t.healthy.Load(), nil
}

// All is healthy only when every one of its monitors is. It stops at the
// first unhealthy monitor or error.
func All(ms ...Monitor) Monitor {
	return MonitorFunc(func(ctx context.Context) (bool, error) {
		for _, m := range ms {
			healthy, err := m.Healthy(ctx)
			if err != nil || !healthy {
				return false, err
			}
		}
		return true, nil
	})
}

// Any is healthy as soon as one of its monitors is. Errors of the unhealthy
// monitors are joined when none of them succeed.
func Any(ms ...Monitor) Monitor {
	return MonitorFunc(func(ctx context.Context) (bool, error) {
		var errs []error
		for _, m := range ms {
			healthy, err := m.Healthy(ctx)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if healthy {
				return true, nil
			}
		}
		return false, errors.Join(errs...)
	})
}
