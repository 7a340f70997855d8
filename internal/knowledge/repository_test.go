// internal/knowledge/repository_test.go
package knowledge

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-workers/internal/engine"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Row values use the wire form pq.Array scans from.
	rows := sqlmock.NewRows([]string{"keywords", "required_keywords", "category", "response"}).
		AddRow("{paiement,prix}", "{}", "payment", "Les commissions sont de 10%.").
		AddRow("{litige}", "{litige}", "security", "Ouvrez un litige.")

	mock.ExpectQuery("SELECT keywords, required_keywords, category, response").
		WillReturnRows(rows)

	repo := NewRepository(db)
	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, []string{"paiement", "prix"}, entries[0].Keywords)
	assert.Equal(t, engine.CategoryPayment, entries[0].Category)
	assert.Equal(t, []string{"litige"}, entries[1].RequiredKeywords)
	assert.Equal(t, engine.CategorySecurity, entries[1].Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT keywords, required_keywords, category, response").
		WillReturnRows(sqlmock.NewRows([]string{"keywords", "required_keywords", "category", "response"}))

	repo := NewRepository(db)
	_, err = repo.List(context.Background())
	assert.Error(t, err)
}

func TestDefault_CoversAllCategories(t *testing.T) {
	entries := Default()
	require.NotEmpty(t, entries)

	seen := make(map[engine.Category]bool)
	for _, e := range entries {
		assert.NotEmpty(t, e.Keywords)
		assert.NotEmpty(t, e.Response)
		seen[e.Category] = true
	}
	for _, cat := range []engine.Category{
		engine.CategoryPayment, engine.CategorySecurity, engine.CategoryProcess,
		engine.CategoryOnboarding, engine.CategorySupport, engine.CategoryQuality,
	} {
		assert.True(t, seen[cat], "missing category %s", cat)
	}
}
