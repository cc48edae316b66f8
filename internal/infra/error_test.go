package infra

import (
	"testing"

	"garage-scheduler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	cause := errs.New("connection refused")
	err := errs.Wrap(WrapStoreErr(KindUnavailable, "read audit totals", cause), "audit totals")

	assert.True(t, IsKind(err, KindUnavailable))
	assert.False(t, IsKind(err, KindCorrupt))
	assert.True(t, errs.Is(err, cause))
	assert.Contains(t, err.Error(), "STORE_UNAVAILABLE: read audit totals")

	bare := WrapStoreErr(KindCorrupt, "counter", nil)
	assert.Equal(t, "CORRUPT_RECORD: counter", bare.Error())
	assert.False(t, IsKind(cause, KindCorrupt))
}
