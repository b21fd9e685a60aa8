package packages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService serves canned detail responses for handler tests.
type stubService struct {
	Service
	byID map[uuid.UUID]*PackageResponse
}

func (s *stubService) GetPackageByID(ctx context.Context, id uuid.UUID) (*PackageResponse, error) {
	pkg, ok := s.byID[id]
	if !ok {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}

func newDetailRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/packages/:id", NewController(svc).GetPackage)
	return router
}

func getDetail(t *testing.T, router *gin.Engine, id uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/packages/"+id.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetPackageServesPublished(t *testing.T) {
	id := uuid.New()
	svc := &stubService{byID: map[uuid.UUID]*PackageResponse{
		id: {ID: id.String(), Title: "Lisbon Food Walk", Status: StatusPublished},
	}}

	w := getDetail(t, newDetailRouter(svc), id)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lisbon Food Walk")
}

func TestGetPackageHidesUnpublished(t *testing.T) {
	draftID := uuid.New()
	archivedID := uuid.New()
	svc := &stubService{byID: map[uuid.UUID]*PackageResponse{
		draftID:    {ID: draftID.String(), Title: "Unfinished Trek", Status: StatusDraft},
		archivedID: {ID: archivedID.String(), Title: "Retired Tour", Status: StatusArchived},
	}}
	router := newDetailRouter(svc)

	// Anyone holding the id still gets a 404 until the guide publishes.
	for _, id := range []uuid.UUID{draftID, archivedID} {
		w := getDetail(t, router, id)
		assert.Equal(t, http.StatusNotFound, w.Code)
	}
}

func TestGetPackageUnknownID(t *testing.T) {
	svc := &stubService{byID: map[uuid.UUID]*PackageResponse{}}

	w := getDetail(t, newDetailRouter(svc), uuid.New())

	assert.Equal(t, http.StatusNotFound, w.Code)
}
