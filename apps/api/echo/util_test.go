package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/course"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/user"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
	appfs "github.com/Dagua-alejandro/unesum-redes-academico/fs"
	emailsvc "github.com/Dagua-alejandro/unesum-redes-academico/services/email"
	inmemdb "github.com/Dagua-alejandro/unesum-redes-academico/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// fakeFileStore records uploads in memory.
type fakeFileStore struct {
	uploads []string
}

var _ core.FileStore = (*fakeFileStore)(nil)

func (s *fakeFileStore) Upload(ctx context.Context, bucket, path string, r io.Reader) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	s.uploads = append(s.uploads, bucket+"/"+path)
	return s.PublicURL(bucket, path), nil
}

func (s *fakeFileStore) PublicURL(bucket, path string) string {
	return "http://media.test/" + bucket + "/" + path
}

type testEnv struct {
	app  Server
	conf *core.Config

	usrRepo user.Repository
	crsRepo course.Repository
	catRepo category.Repository
	vidRepo video.Repository

	usrSvc user.ServiceInterface
	vidSvc video.ServiceInterface
	store  *fakeFileStore
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := &core.Config{
		Env:                      "TEST",
		TestMode:                 true,
		AppName:                  "UNESUM Redes",
		SecretKey:                "secret",
		FrontendBaseURL:          "http://localhost:3000",
		DefaultFromEmail:         "noreply@localhost",
		ConfirmationTimeoutDelta: 3 * 24 * time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
	core.ParseEmailTemplates(conf, appfs.FS, nopLogger{})

	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	env := &testEnv{
		conf:    conf,
		usrRepo: inmemdb.NewUserRepository(db),
		crsRepo: inmemdb.NewCourseRepository(db),
		catRepo: inmemdb.NewCategoryRepository(db),
		vidRepo: inmemdb.NewVideoRepository(db),
		store:   &fakeFileStore{},
	}

	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	env.usrSvc = user.NewService(env.usrRepo, mailSvc, conf)
	env.vidSvc = video.NewService(env.vidRepo, env.store)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	category.InitValidators(validate, translator)

	env.app = NewServer(ServerDeps{
		Conf:        conf,
		Logger:      nopLogger{},
		UserSvc:     env.usrSvc,
		CourseSvc:   course.NewService(env.crsRepo),
		CategorySvc: category.NewService(env.catRepo),
		VideoSvc:    env.vidSvc,
		Validate:    validate,
		Translator:  translator,
	})
	return env
}

// createUser plants an account directly in the repository.
func (env *testEnv) createUser(t *testing.T, name, email, pwd, role string, isActive bool, createdAt ...time.Time) user.User {
	t.Helper()

	now := time.Now().UTC()
	if len(createdAt) > 0 {
		now = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("SetPassword() failed: %v", err)
		}
	}
	usr, err := env.usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func (env *testEnv) createCategory(t *testing.T, name string, icon category.Icon) category.Category {
	t.Helper()
	cat, err := env.catRepo.CreateCategory(context.Background(), category.Category{Name: name, Icon: icon})
	if err != nil {
		t.Fatalf("CreateCategory() failed: %v", err)
	}
	return cat
}

func (env *testEnv) createCourse(t *testing.T, title, categoryID string, published bool, createdAt ...time.Time) course.Course {
	t.Helper()

	now := time.Now().UTC()
	if len(createdAt) > 0 {
		now = createdAt[0].UTC()
	}
	crs, err := env.crsRepo.CreateCourse(context.Background(), course.Course{
		Title:       title,
		CategoryID:  categoryID,
		IsPublished: published,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func (env *testEnv) createVideo(t *testing.T, title string, published bool, createdAt ...time.Time) video.Video {
	t.Helper()

	now := time.Now().UTC()
	if len(createdAt) > 0 {
		now = createdAt[0].UTC()
	}
	vid, err := env.vidRepo.CreateVideo(context.Background(), video.Video{
		Title:       title,
		VideoURL:    "http://media.test/videos/x.mp4",
		IsPublished: published,
		CreatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateVideo() failed: %v", err)
	}
	return vid
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
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

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newUploadRequest builds a multipart request with form values and file parts.
func newUploadRequest(t *testing.T, path, token string, fields map[string]string, files map[string][]byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for name, val := range fields {
		if err := w.WriteField(name, val); err != nil {
			t.Fatalf("WriteField() failed: %v", err)
		}
	}
	for name, content := range files {
		fw, err := w.CreateFormFile(name, name+".bin")
		if err != nil {
			t.Fatalf("CreateFormFile() failed: %v", err)
		}
		if _, err = fw.Write(content); err != nil {
			t.Fatalf("writing file part failed: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing multipart writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func (env *testEnv) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	claims := GetUserClaims(env.conf, usr)
	token, err := GenerateToken(env.conf, claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	l1, ok1 := j1.([]interface{})
	l2, ok2 := j2.([]interface{})
	if ok1 && ok2 {
		return assert.ElementsMatch(t, l1, l2), nil
	}
	return false, nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
