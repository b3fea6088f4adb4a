package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finapp/internal/cache"
	"finapp/internal/core"
)

func TestStoreLoadSetsCookie(t *testing.T) {
	store := NewStore(DefaultConfig(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	st := store.Load(rec, req)
	require.NotNil(t, st)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 1, store.Size())
}

func TestStoreLoadReusesSession(t *testing.T) {
	store := NewStore(DefaultConfig(), nil)

	first := httptest.NewRecorder()
	st := store.Load(first, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, st.AppendBlank(core.Income))
	cookie := first.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	again := store.Load(second, req)

	assert.Same(t, st, again)
	assert.Equal(t, 2, again.Len(core.Income))
	assert.Empty(t, second.Result().Cookies())
}

func TestStoreUnknownCookieStartsFresh(t *testing.T) {
	store := NewStore(DefaultConfig(), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-uuid"})
	rec := httptest.NewRecorder()
	st := store.Load(rec, req)

	assert.Equal(t, 1, st.Len(core.Expense))
	assert.Len(t, rec.Result().Cookies(), 1)
}

func TestStoreExpiry(t *testing.T) {
	mgr := cache.NewManager(nil)
	store := NewStore(Config{TTL: 20 * time.Millisecond, MaxSessions: 10}, mgr)

	id, _ := store.Create()
	_, ok := store.Get(id)
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	cleaned := mgr.CleanNow()
	assert.Equal(t, 1, cleaned["sessions"])

	_, ok = store.Get(id)
	assert.False(t, ok)
}

func TestStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store := NewStore(Config{TTL: time.Hour, MaxSessions: 2}, nil)

	a, _ := store.Create()
	b, _ := store.Create()
	_, ok := store.Get(a)
	require.True(t, ok)
	store.Create()

	_, ok = store.Get(a)
	assert.True(t, ok)
	_, ok = store.Get(b)
	assert.False(t, ok)
}
