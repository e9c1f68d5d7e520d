package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"dci-control-server/internal/api/handlers"
	"dci-control-server/internal/auth"
	"dci-control-server/internal/authz"
	"dci-control-server/internal/database/models"
	apperrors "dci-control-server/internal/errors"
	"dci-control-server/internal/mocks"
	"dci-control-server/internal/service"
	"dci-control-server/internal/testutils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// ResourceHandlerTestSuite exercises the generic handler against a mocked service
type ResourceHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockResourceServiceInterface[models.RemoteCI]
	httpSuite   *testutils.HTTPTestSuite
	caller      *authz.Caller
}

func (suite *ResourceHandlerTestSuite) SetupTest() {
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockResourceServiceInterface[models.RemoteCI](suite.ctrl)
	suite.mockService.EXPECT().Kind().Return(models.KindRemoteCI).AnyTimes()

	suite.caller = &authz.Caller{UserID: uuid.New(), Name: "po", Role: models.RoleProductOwner, TeamID: uuid.New()}

	suite.httpSuite = testutils.SetupHTTPTest()
	v1 := suite.httpSuite.Router.Group("/api/v1", func(c *gin.Context) {
		auth.SetCaller(c, suite.caller)
	})
	handlers.NewResourceHandler[models.RemoteCI](suite.mockService).Register(v1.Group("/remotecis"))
}

func (suite *ResourceHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ResourceHandlerTestSuite) remoteci(name string) *models.RemoteCI {
	return &models.RemoteCI{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
			Etag:      uuid.NewString(),
			State:     models.StateActive,
		},
		Name:   name,
		TeamID: suite.caller.TeamID,
	}
}

func (suite *ResourceHandlerTestSuite) TestListParsesOptions() {
	ci := suite.remoteci("lab-1")
	suite.mockService.EXPECT().
		List(gomock.Any(), suite.caller, service.ListParams{
			Limit:   10,
			Offset:  20,
			Sort:    []string{"-name", "created_at"},
			Embeds:  []string{"team"},
			Filters: map[string]string{"name": "lab-1"},
		}).
		Return(&service.Page[models.RemoteCI]{Items: []models.RemoteCI{*ci}, Count: 21}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet,
		"/api/v1/remotecis?limit=10&offset=20&sort=-name,created_at&embed=team&name=lab-1", nil)

	var body struct {
		RemoteCIs []map[string]interface{} `json:"remotecis"`
		Meta      struct {
			Count int64 `json:"count"`
		} `json:"_meta"`
	}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &body)
	suite.Equal(int64(21), body.Meta.Count)
	suite.Require().Len(body.RemoteCIs, 1)
	suite.Equal("lab-1", body.RemoteCIs[0]["name"])
	suite.Contains(body.RemoteCIs[0], "team")
	suite.Nil(body.RemoteCIs[0]["team"])
}

func (suite *ResourceHandlerTestSuite) TestListDefaultsAndEmptyResult() {
	suite.mockService.EXPECT().
		List(gomock.Any(), suite.caller, service.ListParams{Limit: 100, Filters: map[string]string{}}).
		Return(&service.Page[models.RemoteCI]{}, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/remotecis", nil)

	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, nil)
	suite.JSONEq(`{"remotecis": [], "_meta": {"count": 0}}`, recorder.Body.String())
}

func (suite *ResourceHandlerTestSuite) TestListRejectsBadPaging() {
	for _, query := range []string{"limit=0", "limit=1001", "limit=abc", "offset=-1"} {
		recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/remotecis?"+query, nil)
		payload := testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, handlers.MsgRequestMalformed)
		suite.Contains(payload, "errors", query)
	}
}

func (suite *ResourceHandlerTestSuite) TestPurgeListsArchived() {
	suite.mockService.EXPECT().
		List(gomock.Any(), suite.caller, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *authz.Caller, params service.ListParams) (*service.Page[models.RemoteCI], error) {
			suite.True(params.Archived)
			return &service.Page[models.RemoteCI]{}, nil
		})

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/remotecis/purge", nil)
	suite.Equal(http.StatusOK, recorder.Code)
}

func (suite *ResourceHandlerTestSuite) TestCreate() {
	ci := suite.remoteci("lab-2")
	suite.mockService.EXPECT().
		Create(gomock.Any(), suite.caller, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *authz.Caller, raw map[string]interface{}) (*models.RemoteCI, error) {
			suite.Equal("lab-2", raw["name"])
			suite.Equal(json.Number("3"), raw["priority"])
			return ci, nil
		})

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/remotecis", map[string]interface{}{"name": "lab-2", "priority": 3})

	var body map[string]map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusCreated, &body)
	suite.Equal(ci.ID.String(), body["remoteci"]["id"])
	suite.Equal(ci.Etag, recorder.Header().Get("ETag"))
}

func (suite *ResourceHandlerTestSuite) TestCreateMalformedBody() {
	for _, raw := range []string{"not json", "[1, 2]"} {
		recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/remotecis", raw)
		testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, "JSON object")
	}
}

func (suite *ResourceHandlerTestSuite) TestGetSetsEtagHeader() {
	ci := suite.remoteci("lab-3")
	suite.mockService.EXPECT().Get(gomock.Any(), suite.caller, ci.ID, []string(nil)).Return(ci, nil)

	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/remotecis/"+ci.ID.String(), nil)

	var body map[string]map[string]interface{}
	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, &body)
	suite.Equal(ci.Etag, body["remoteci"]["etag"])
	suite.Equal(ci.Etag, recorder.Header().Get("ETag"))
}

func (suite *ResourceHandlerTestSuite) TestGetInvalidID() {
	recorder := suite.httpSuite.MakeRequest(http.MethodGet, "/api/v1/remotecis/not-a-uuid", nil)
	payload := testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, handlers.MsgRequestMalformed)
	suite.Equal(map[string]interface{}{"id": "not a valid uuid"}, payload["errors"])
}

func (suite *ResourceHandlerTestSuite) TestUpdatePassesIfMatch() {
	ci := suite.remoteci("lab-4")
	suite.mockService.EXPECT().
		Update(gomock.Any(), suite.caller, ci.ID, "etag-1", gomock.Any()).
		Return(ci, nil)

	recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodPut, "/api/v1/remotecis/"+ci.ID.String(),
		map[string]interface{}{"name": "lab-4"}, map[string]string{handlers.IfMatchHeader: "etag-1"})

	testutils.AssertJSONResponse(suite.T(), recorder, http.StatusOK, nil)
	suite.Equal(ci.Etag, recorder.Header().Get("ETag"))
}

func (suite *ResourceHandlerTestSuite) TestDelete() {
	id := uuid.New()
	suite.mockService.EXPECT().Delete(gomock.Any(), suite.caller, id, "etag-2").Return(nil)

	recorder := suite.httpSuite.MakeRequestWithHeaders(http.MethodDelete, "/api/v1/remotecis/"+id.String(),
		nil, map[string]string{handlers.IfMatchHeader: "etag-2"})

	suite.Equal(http.StatusNoContent, recorder.Code)
	suite.Empty(recorder.Body.String())
}

func (suite *ResourceHandlerTestSuite) TestErrorMapping() {
	id := uuid.New()
	cases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"field errors", apperrors.FieldErrors{"name": "is required"}, http.StatusBadRequest, handlers.MsgRequestMalformed},
		{"authentication", apperrors.NewAuthenticationError("bad credentials"), http.StatusUnauthorized, "bad credentials"},
		{"authorization", apperrors.NewAuthorizationError("not allowed"), http.StatusUnauthorized, "not allowed"},
		{"not found", apperrors.NewNotFoundError("remoteci"), http.StatusNotFound, "remoteci"},
		{"conflict", apperrors.NewConflictError("remoteci", "etag mismatch"), http.StatusConflict, "etag mismatch"},
		{"already exists", apperrors.NewAlreadyExistsError("remoteci", "name"), http.StatusConflict, "remoteci"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			suite.mockService.EXPECT().Delete(gomock.Any(), suite.caller, id, "").Return(tc.err)

			recorder := suite.httpSuite.MakeRequest(http.MethodDelete, "/api/v1/remotecis/"+id.String(), nil)
			testutils.AssertErrorResponse(suite.T(), recorder, tc.status, tc.message)
			suite.NotContains(recorder.Body.String(), "connection reset")
		})
	}
}

func (suite *ResourceHandlerTestSuite) TestFieldErrorsPayload() {
	suite.mockService.EXPECT().
		Create(gomock.Any(), suite.caller, gomock.Any()).
		Return(nil, apperrors.FieldErrors{"name": "is required", "team_id": "not a valid uuid"})

	recorder := suite.httpSuite.MakeRequest(http.MethodPost, "/api/v1/remotecis", map[string]interface{}{})

	payload := testutils.AssertErrorResponse(suite.T(), recorder, http.StatusBadRequest, handlers.MsgRequestMalformed)
	suite.Equal(map[string]interface{}{"name": "is required", "team_id": "not a valid uuid"}, payload["errors"])
}

func TestResourceHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ResourceHandlerTestSuite))
}

func TestAppendOnlyHasNoWriteRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockResourceServiceInterface[models.JobState](ctrl)

	httpSuite := testutils.SetupHTTPTest()
	handlers.NewResourceHandler[models.JobState](svc).AppendOnly().Register(httpSuite.Router.Group("/jobstates"))

	id := uuid.NewString()
	assert.Equal(t, http.StatusNotFound, httpSuite.MakeRequest(http.MethodPut, "/jobstates/"+id, map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, httpSuite.MakeRequest(http.MethodDelete, "/jobstates/"+id, nil).Code)
}

func TestRequiresCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockResourceServiceInterface[models.Team](ctrl)

	httpSuite := testutils.SetupHTTPTest()
	handlers.NewResourceHandler[models.Team](svc).Register(httpSuite.Router.Group("/teams"))

	recorder := httpSuite.MakeRequest(http.MethodGet, "/teams", nil)
	testutils.AssertErrorResponse(t, recorder, http.StatusUnauthorized, "authentication required")
}
