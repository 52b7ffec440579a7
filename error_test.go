package vast_test

import (
	"testing"

	"github.com/courseaudit/vast"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := vast.Errorf(vast.ENOTFOUND, "course %q not found", "1834")

	assert.Equal(t, vast.ENOTFOUND, vast.ErrorCode(err))
	assert.Equal(t, "course \"1834\" not found", vast.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, vast.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, vast.ErrorMessage(nil))
}
