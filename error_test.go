package webext_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webext"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webext.Errorf(webext.ENOTFOUND, "namespace %q not found", "tabs")

	assert.Equal(t, webext.ENOTFOUND, webext.ErrorCode(err))
	assert.Equal(t, "namespace \"tabs\" not found", webext.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parse tabs: %w", webext.Errorf(webext.EUNSUPPORTED, "type %q", "map of X"))

	assert.Equal(t, webext.EUNSUPPORTED, webext.ErrorCode(err))
	assert.Equal(t, "type \"map of X\"", webext.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, webext.EINTERNAL, webext.ErrorCode(err))
	assert.Equal(t, "Internal error.", webext.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webext.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webext.ErrorMessage(nil))
}
