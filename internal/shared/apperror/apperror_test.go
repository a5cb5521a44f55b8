package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Run("extracts the kind through wrapping", func(t *testing.T) {
		err := fmt.Errorf("handling request: %w", NotFoundf("location %s not found", "abc"))
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("unclassified errors are internal", func(t *testing.T) {
		assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
		assert.Equal(t, KindInternal, KindOf(nil))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("no rows in result set")
	err := Wrap(KindNotFound, cause, "location not found")

	assert.Equal(t, "location not found", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindNotFound, err.Kind())
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(Forbiddenf("cannot delete a contracted location"), KindForbidden))
	assert.False(t, IsKind(Forbiddenf("nope"), KindBadRequest))
	assert.False(t, IsKind(nil, KindInternal))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "bad_request", KindBadRequest.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "forbidden", KindForbidden.String())
	assert.Equal(t, "internal", KindInternal.String())
}
