// Package inmemdb provides map-backed repository implementations used
// as lightweight stand-ins for PostgreSQL in tests.
package inmemdb

import (
	"strings"
	"sync"

	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/course"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/user"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/video"
)

type (
	DB struct {
		user     *userTable
		course   *courseTable
		category *categoryTable
		video    *videoTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		table map[string]*course.Course
	}

	categoryTable struct {
		sync.RWMutex
		table map[string]*category.Category
	}

	videoTable struct {
		sync.RWMutex
		table map[string]*video.Video
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		course:   &courseTable{table: make(map[string]*course.Course)},
		category: &categoryTable{table: make(map[string]*category.Category)},
		video:    &videoTable{table: make(map[string]*video.Video)},
	}
	return db, nil
}

// containsFold reports whether substr occurs in s, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
