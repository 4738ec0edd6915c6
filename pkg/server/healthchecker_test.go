package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type downChecker struct{}

func (downChecker) Healthy(context.Context) bool { return false }

func TestCompositeHealthChecker(t *testing.T) {
	ctx := context.Background()
	down := downChecker{}

	assert.True(t, NewCompositeHealthChecker().Healthy(ctx))
	assert.True(t, NewCompositeHealthChecker(NewOkHealthChecker()).Healthy(ctx))

	hc := NewCompositeHealthChecker(NewOkHealthChecker())
	hc.Add(down)
	assert.False(t, hc.Healthy(ctx))
}
