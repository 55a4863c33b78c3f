package echoapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/apper-canvas/insta-studyhub-auto/apps/api/echo"
	"github.com/apper-canvas/insta-studyhub-auto/core"
	"github.com/apper-canvas/insta-studyhub-auto/core/assignment"
	"github.com/apper-canvas/insta-studyhub-auto/core/course"
	"github.com/apper-canvas/insta-studyhub-auto/core/report"
	logsvc "github.com/apper-canvas/insta-studyhub-auto/services/logger"
	dummydb "github.com/apper-canvas/insta-studyhub-auto/storage/database/dummy"
)

// a Wednesday: the fixtures fill every dashboard bucket
var now = time.Date(2024, time.October, 16, 12, 0, 0, 0, time.UTC)

type httpErr struct {
	Error interface{} `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

type testApp struct {
	*echoapi.Server
	conf           *core.Config
	courseRepo     course.Repository
	assignmentRepo assignment.Repository
}

func newTestConfig(authEnabled bool) *core.Config {
	return &core.Config{
		Env:       "TEST",
		AppName:   "StudyHub",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			AuthEnabled:        authEnabled,
			JWTExpirationDelta: time.Hour,
		},
	}
}

func newTestServer(conf *core.Config, courseRepo course.Repository, assignmentRepo assignment.Repository) *echoapi.Server {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	assignment.InitValidators(validate, translator)

	courseSvc := course.NewService(courseRepo)
	assignmentSvc := assignment.NewService(assignmentRepo)

	return echoapi.NewServer("", nil, &echoapi.Deps{
		Conf:          conf,
		Logger:        logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf),
		CourseSvc:     courseSvc,
		AssignmentSvc: assignmentSvc,
		ReportSvc:     report.NewService(courseSvc, assignmentSvc, assignment.DefaultHorizonDays),
		Validate:      validate,
		Translator:    translator,
		Now:           func() time.Time { return now },
	})
}

// setup returns a server over a fresh fixture DB.
func setup(t *testing.T, authEnabled ...bool) testApp {
	t.Helper()

	db, err := dummydb.Open(dummydb.Options{Fixtures: true, Now: now})
	require.NoError(t, err)

	conf := newTestConfig(len(authEnabled) > 0 && authEnabled[0])
	app := testApp{
		conf:           conf,
		courseRepo:     dummydb.NewCourseRepository(db),
		assignmentRepo: dummydb.NewAssignmentRepository(db),
	}
	app.Server = newTestServer(conf, app.courseRepo, app.assignmentRepo)
	return app
}

func (app testApp) getToken(t *testing.T) string {
	token, err := echoapi.GenerateToken(app.conf, echoapi.NewClaims(app.conf, "student", time.Now()))
	require.NoError(t, err)
	return token
}

func (app testApp) getCourse(t *testing.T, id int) course.Course {
	c, err := app.courseRepo.GetCourseByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func (app testApp) getCourses(t *testing.T, ids ...int) []interface{} {
	objs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		objs = append(objs, app.getCourse(t, id))
	}
	return objs
}

func (app testApp) getAssignment(t *testing.T, id int) assignment.Assignment {
	a, err := app.assignmentRepo.GetAssignmentByID(context.Background(), id)
	require.NoError(t, err)
	return a
}

func (app testApp) getAssignments(t *testing.T, ids ...int) []interface{} {
	objs := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		objs = append(objs, app.getAssignment(t, id))
	}
	return objs
}

func (app testApp) do(tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newAuthRequest(method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func unmarshal(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	wantCode := tt.wantCode
	if wantCode == 0 {
		wantCode = http.StatusOK
	}
	assert.Equal(t, wantCode, rec.Code, rec.Body.String())
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}
