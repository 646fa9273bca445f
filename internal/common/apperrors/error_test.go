package apperrors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorChain(t *testing.T) {
	ErrBase := New("base error")
	assert.Equal(t, "base error", ErrBase.Error())
	assert.ErrorIs(t, ErrBase, ErrBase)

	ErrChild := ErrBase.New("child error")
	assert.Equal(t, "child error", ErrChild.Error())
	assert.ErrorIs(t, ErrChild, ErrBase)

	ErrOther := New("other error")
	wrapped := ErrChild.Err(ErrOther)
	assert.Equal(t, "child error", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, ErrOther)

	plain := errors.New("plain")
	wrapped = ErrBase.New("wrapper").MsgErr("msg", plain)
	assert.Equal(t, "msg", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, plain)
}

func TestErrorStatusCode(t *testing.T) {
	ErrBase := New("base").SetStatusCode(http.StatusInternalServerError)
	assert.Equal(t, http.StatusInternalServerError, ErrBase.StatusCode())

	// children inherit until overridden
	ErrChild := ErrBase.New("child")
	assert.Equal(t, http.StatusInternalServerError, ErrChild.StatusCode())

	ErrNotFound := ErrBase.New("not found").SetStatusCode(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, ErrNotFound.StatusCode())
	assert.ErrorIs(t, ErrNotFound, ErrBase)
}

func TestErrorAll(t *testing.T) {
	ErrBase := New("base").SetExpandError(true)
	wrapped := ErrBase.New("lookup failed").SetExpandError(true).
		Err(errors.New("no rows"), errors.New("conn closed"))
	assert.Equal(t, "lookup failed: no rows; conn closed", wrapped.ErrorAll())

	compact := New("quiet").Err(errors.New("hidden"))
	assert.Equal(t, "quiet", compact.ErrorAll())
}
