package category_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dagua-alejandro/unesum-redes-academico/core"
	"github.com/Dagua-alejandro/unesum-redes-academico/core/category"
	inmemdb "github.com/Dagua-alejandro/unesum-redes-academico/storage/database/inmem"
)

func setup(t *testing.T) *category.Service {
	t.Helper()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	return category.NewService(inmemdb.NewCategoryRepository(db))
}

func TestService_Create(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	cat, err := svc.Create(ctx, category.NewCategory{
		Name:  "Redes",
		Icon:  "network",
		Color: "from-blue-500 to-cyan-500",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.Equal(t, category.IconNetwork, cat.Icon)

	t.Run("unknown icon", func(t *testing.T) {
		_, err := svc.Create(ctx, category.NewCategory{Name: "Cohetes", Icon: "rocket"})
		vErr, ok := err.(*core.ValidationError)
		require.True(t, ok, "want *core.ValidationError, got %v", err)
		assert.Equal(t, "icon", vErr.Fields[0].Field)
	})
	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(ctx, category.NewCategory{Name: "Redes", Icon: "globe"})
		assert.Equal(t, category.ErrNameExists, err)
	})
}

func TestService_Query_alphabetical(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	for _, name := range []string{"Seguridad", "Internet", "Redes"} {
		_, err := svc.Create(ctx, category.NewCategory{Name: name, Icon: "book"})
		require.NoError(t, err)
	}

	cats, err := svc.Query(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 3)
	assert.Equal(t, "Internet", cats[0].Name)
	assert.Equal(t, "Redes", cats[1].Name)
	assert.Equal(t, "Seguridad", cats[2].Name)
}
