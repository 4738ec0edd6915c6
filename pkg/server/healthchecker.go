package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// CompositeHealthChecker is healthy when every member is.
type CompositeHealthChecker struct {
	checkers []HealthChecker
}

func NewCompositeHealthChecker(checkers ...HealthChecker) *CompositeHealthChecker {
	return &CompositeHealthChecker{checkers: checkers}
}

func (hc *CompositeHealthChecker) Add(checker HealthChecker) {
	hc.checkers = append(hc.checkers, checker)
}

func (hc *CompositeHealthChecker) Healthy(ctx context.Context) bool {
	for _, c := range hc.checkers {
		if !c.Healthy(ctx) {
			return false
		}
	}
	return true
}
