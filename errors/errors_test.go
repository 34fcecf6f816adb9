package errors

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrReportNotFound))
	assert.Equal(t, KindInvalidState, KindOf(fmt.Errorf("wrapped: %w", ErrAlreadyVoted)))
	assert.Equal(t, KindInternal, KindOf(io.EOF))
	assert.Equal(t, KindResourceUnavailable, New("down", http.StatusServiceUnavailable).Code)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, Status(InvalidState("cannot %s", "assign")))
	assert.Equal(t, http.StatusForbidden, Status(ErrNotAssigned))
	assert.Equal(t, http.StatusInternalServerError, Status(io.EOF))
}
