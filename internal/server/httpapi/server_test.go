package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

type stubAuthService struct {
	registerErr error
	loginPair   *services.TokenPair
	loginErr    error
	refreshPair *services.TokenPair
	refreshErr  error
}

func (f *stubAuthService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *stubAuthService) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginPair, nil
}

func (f *stubAuthService) Refresh(ctx context.Context, rawToken string) (*services.TokenPair, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshPair, nil
}

type stubNoteService struct {
	createOut *models.Note
	createErr error
	listOut   []*models.Note
	listErr   error
	deleteErr error

	gotOwnerID string
	gotNoteID  string
}

func (f *stubNoteService) Create(ctx context.Context, ownerID, title, content string, color int64) (*models.Note, error) {
	f.gotOwnerID = ownerID
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return &models.Note{ID: "n1", OwnerID: ownerID, Title: title, Content: content, Color: color}, nil
}

func (f *stubNoteService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Note, error) {
	f.gotOwnerID = ownerID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *stubNoteService) Delete(ctx context.Context, id, ownerID string) error {
	f.gotOwnerID = ownerID
	f.gotNoteID = id
	return f.deleteErr
}

func newTestServer(t *testing.T, as AuthService, ns NoteService) (*Server, *auth.Signer) {
	t.Helper()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	signer := auth.NewSigner([]byte("test-secret"))
	return NewServer(":0", logger, as, ns, signer), signer
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRegister_Created(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/register",
		authRequest{Email: "alice@example.com", Password: "pw123456"}, nil)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{registerErr: common.ErrDuplicateCredential}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/register",
		authRequest{Email: "alice@example.com", Password: "pw123456"}, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_InvalidInput(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{}, &stubNoteService{})

	for _, req := range []authRequest{
		{Email: "not-an-email", Password: "pw123456"},
		{Email: "alice@example.com", Password: "short"},
	} {
		rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/register", req, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "input: %+v", req)
	}
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{
		loginPair: &services.TokenPair{AccessToken: "acc", RefreshToken: "ref"},
	}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/login",
		authRequest{Email: "alice@example.com", Password: "pw123456"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenPairResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "acc", resp.AccessToken)
	assert.Equal(t, "ref", resp.RefreshToken)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{loginErr: common.ErrInvalidCredentials}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/login",
		authRequest{Email: "alice@example.com", Password: "wrong-password"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_InfrastructureError(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{loginErr: common.ErrorInternal}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/login",
		authRequest{Email: "alice@example.com", Password: "pw123456"}, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRefresh_ReturnsNewPair(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{
		refreshPair: &services.TokenPair{AccessToken: "acc2", RefreshToken: "ref2"},
	}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/refresh",
		refreshRequest{RefreshToken: "ref1"}, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp tokenPairResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ref2", resp.RefreshToken)
}

func TestRefresh_InvalidToken(t *testing.T) {
	srv, _ := newTestServer(t, &stubAuthService{refreshErr: common.ErrInvalidRefreshToken}, &stubNoteService{})

	rec := doJSON(t, srv.Router(), http.MethodPost, "/auth/refresh",
		refreshRequest{RefreshToken: "bogus"}, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotes_RequireAccessToken(t *testing.T) {
	srv, signer := newTestServer(t, &stubAuthService{}, &stubNoteService{})
	router := srv.Router()

	// no token
	rec := doJSON(t, router, http.MethodGet, "/notes", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// refresh token must not pass as an access token
	refreshTok, err := signer.Issue("u1", auth.KindRefresh, time.Hour)
	require.NoError(t, err)
	rec = doJSON(t, router, http.MethodGet, "/notes", nil, map[string]string{"Authorization": "Bearer " + refreshTok})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// garbage token
	rec = doJSON(t, router, http.MethodGet, "/notes", nil, map[string]string{"Authorization": "Bearer junk"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestNotes_CreateListDelete(t *testing.T) {
	ns := &stubNoteService{}
	srv, signer := newTestServer(t, &stubAuthService{}, ns)
	router := srv.Router()

	accessTok, err := signer.Issue("owner-7", auth.KindAccess, time.Hour)
	require.NoError(t, err)
	hdr := map[string]string{"Authorization": "Bearer " + accessTok}

	rec := doJSON(t, router, http.MethodPost, "/notes",
		noteRequest{Title: "shopping", Content: "milk", Color: 0xFFAA00}, hdr)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner-7", ns.gotOwnerID, "owner id must come from the validated token")

	var created noteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "n1", created.ID, "response must echo the persisted note id")

	ns.listOut = []*models.Note{{ID: "n1", OwnerID: "owner-7", Title: "shopping"}}
	rec = doJSON(t, router, http.MethodGet, "/notes", nil, hdr)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []noteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "n1", list[0].ID)

	rec = doJSON(t, router, http.MethodDelete, "/notes/n1", nil, hdr)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "n1", ns.gotNoteID)
	assert.Equal(t, "owner-7", ns.gotOwnerID)
}

func TestNotes_ListEmptyIsJSONArray(t *testing.T) {
	srv, signer := newTestServer(t, &stubAuthService{}, &stubNoteService{})

	accessTok, err := signer.Issue("owner-7", auth.KindAccess, time.Hour)
	require.NoError(t, err)

	rec := doJSON(t, srv.Router(), http.MethodGet, "/notes", nil,
		map[string]string{"Authorization": "Bearer " + accessTok})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestNotes_DeleteForeignNote(t *testing.T) {
	srv, signer := newTestServer(t, &stubAuthService{}, &stubNoteService{deleteErr: common.ErrorNotFound})

	accessTok, err := signer.Issue("intruder", auth.KindAccess, time.Hour)
	require.NoError(t, err)

	rec := doJSON(t, srv.Router(), http.MethodDelete, "/notes/n1", nil,
		map[string]string{"Authorization": "Bearer " + accessTok})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
