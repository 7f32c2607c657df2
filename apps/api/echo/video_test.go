package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagua-alejandro/unesum-redes-academico/core/user"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
)

func TestVideoAPI_PublicGallery(t *testing.T) {
	env := setup(t)

	published := env.createVideo(t, "Clase 01: Subnetting", true)
	draft := env.createVideo(t, "Clase 02: VLSM", false)

	tests := []httpTest{
		{
			name:     "only published videos are listed",
			method:   http.MethodGet,
			path:     "/v1/videos",
			wantCode: http.StatusOK,
			wantData: marchallList(t, published),
		},
		{
			name:     "published filter cannot be overridden",
			method:   http.MethodGet,
			path:     "/v1/videos?is_published=false",
			wantCode: http.StatusOK,
			wantData: marchallList(t, published),
		},
		{
			name:     "published video is retrievable",
			method:   http.MethodGet,
			path:     "/v1/videos/" + published.ID,
			wantCode: http.StatusOK,
			wantData: marchallObj(t, published),
		},
		{
			name:     "unpublished video stays hidden",
			method:   http.MethodGet,
			path:     "/v1/videos/" + draft.ID,
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:     "unknown video",
			method:   http.MethodGet,
			path:     "/v1/videos/" + uuid.New().String(),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestVideoAPI_Submit(t *testing.T) {
	env := setup(t)

	admin := env.createUser(t, "Admin", "admin@unesum.edu.ec", "", user.RoleAdmin, true)
	student := env.createUser(t, "Student", "student@unesum.edu.ec", "", user.RoleStudent, true)
	adminToken := env.getToken(t, admin)

	t.Run("student forbidden", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/admin/videos", env.getToken(t, student),
			map[string]string{"title": "Clase 01"}, map[string][]byte{"video_file": []byte("datadata")})
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())
	})

	t.Run("title required", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/admin/videos", adminToken,
			nil, map[string][]byte{"video_file": []byte("datadata")})
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	t.Run("video file required", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"video_file": "a video file is required"}),
		}
		req, rec := newUploadRequest(t, "/v1/admin/videos", adminToken,
			map[string]string{"title": "Clase 01: Subnetting"}, nil)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
		assert.Empty(t, env.store.uploads, "nothing must reach the file store")
	})

	t.Run("video only", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/admin/videos", adminToken,
			map[string]string{"title": "Clase 01: Subnetting", "description": "VLSM y mascaras."},
			map[string][]byte{"video_file": []byte("datadata")})
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var vid video.Video
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vid))
		assert.NotEmpty(t, vid.ID)
		assert.NotEmpty(t, vid.VideoURL)
		assert.Empty(t, vid.ThumbnailURL)
		assert.False(t, vid.IsPublished, "new videos must start unpublished")
		assert.Equal(t, admin.ID, vid.UploadedBy)
	})

	t.Run("video and thumbnail", func(t *testing.T) {
		req, rec := newUploadRequest(t, "/v1/admin/videos", adminToken,
			map[string]string{"title": "Clase 02: VLSM"},
			map[string][]byte{"video_file": []byte("datadata"), "thumbnail_file": []byte("imgimg")})
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var vid video.Video
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vid))
		assert.NotEmpty(t, vid.VideoURL)
		assert.NotEmpty(t, vid.ThumbnailURL)
	})
}

func TestVideoAPI_AdminManagement(t *testing.T) {
	env := setup(t)

	admin := env.createUser(t, "Admin", "admin@unesum.edu.ec", "", user.RoleAdmin, true)
	adminToken := env.getToken(t, admin)

	vid := env.createVideo(t, "Clase 01: Subnetting", false)

	t.Run("list includes drafts", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallList(t, vid)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/videos", adminToken)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("toggle published", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/videos/"+vid.ID+"/toggle-published", adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var toggled video.Video
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
		assert.True(t, toggled.IsPublished)

		// now visible in the public gallery
		req, rec = newRequest(http.MethodGet, "/v1/videos/"+vid.ID)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("toggle unknown video", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/videos/"+uuid.New().String()+"/toggle-published", adminToken)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	})

	t.Run("delete", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusConflict,
			wantData: marchallObj(t, httpErr{Error: "confirmation required to delete this video"}),
		}
		req, rec := newAuthRequest(http.MethodDelete, "/v1/admin/videos/"+vid.ID, adminToken)
		env.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)

		req, rec = newAuthRequest(http.MethodDelete, "/v1/admin/videos/"+vid.ID+"?confirm=true", adminToken)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

		req, rec = newAuthRequest(http.MethodDelete, "/v1/admin/videos/"+vid.ID+"?confirm=true", adminToken)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	})
}
