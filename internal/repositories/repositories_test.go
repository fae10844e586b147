package repositories_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Each test gets its own named in-memory database: the shared cache
	// keeps it alive across pooled connections without leaking between tests.
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.GenreTitle{},
		&models.Review{},
		&models.Comment{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTitle(t *testing.T, db *gorm.DB, name string, year int) *models.Title {
	t.Helper()
	title := &models.Title{Name: name, Year: year}
	require.NoError(t, db.Create(title).Error)
	return title
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMUserRepository(db)

	require.NoError(t, repo.Create(&models.User{Username: "alice", Email: "a@example.com"}))

	err := repo.Create(&models.User{Username: "alice", Email: "b@example.com"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestReviewRepository_OneReviewPerAuthorPerTitle(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMReviewRepository(db)
	author := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 2021)

	first := &models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "good", Score: 8}
	require.NoError(t, repo.Create(first))

	second := &models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "again", Score: 9}
	err := repo.Create(second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// A different author on the same title is fine.
	other := seedUser(t, db, "bob")
	third := &models.Review{TitleID: title.ID, AuthorID: other.ID, Text: "meh", Score: 4}
	assert.NoError(t, repo.Create(third))
}

func TestReviewRepository_ConcurrentDuplicates(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMReviewRepository(db)
	author := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Dune", 2021)

	const attempts = 4
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			review := &models.Review{
				TitleID:  title.ID,
				AuthorID: author.ID,
				Text:     fmt.Sprintf("attempt %d", n),
				Score:    7,
			}
			results <- repo.Create(review)
		}(i)
	}
	wg.Wait()
	close(results)

	var ok, dup int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, gorm.ErrDuplicatedKey):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one create may win")
	assert.Equal(t, attempts-1, dup)
}

func TestTitleRepository_RatingAggregation(t *testing.T) {
	db := setupDB(t)
	titleRepo := repositories.NewGORMTitleRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	title := seedTitle(t, db, "Dune", 2021)

	avg, err := titleRepo.Rating(title.ID)
	require.NoError(t, err)
	assert.Nil(t, avg, "no reviews means no rating")

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	require.NoError(t, reviewRepo.Create(&models.Review{TitleID: title.ID, AuthorID: alice.ID, Text: "a", Score: 7}))
	require.NoError(t, reviewRepo.Create(&models.Review{TitleID: title.ID, AuthorID: bob.ID, Text: "b", Score: 8}))

	avg, err = titleRepo.Rating(title.ID)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 7.5, *avg, 0.001)
}

func TestTitleRepository_FiltersAndGenres(t *testing.T) {
	db := setupDB(t)
	titleRepo := repositories.NewGORMTitleRepository(db)

	drama := &models.Category{Slug: "film", Name: "Film"}
	require.NoError(t, db.Create(drama).Error)
	g1 := &models.Genre{Slug: "drama", Name: "Drama"}
	g2 := &models.Genre{Slug: "sci-fi", Name: "Sci-Fi"}
	require.NoError(t, db.Create(g1).Error)
	require.NoError(t, db.Create(g2).Error)

	dune := &models.Title{Name: "Dune", Year: 2021, CategoryID: &drama.ID}
	require.NoError(t, titleRepo.Create(dune, []uint{g1.ID, g2.ID}))
	other := &models.Title{Name: "Old Film", Year: 1980}
	require.NoError(t, titleRepo.Create(other, nil))

	byGenre, err := titleRepo.List(repositories.TitleFilter{GenreSlug: "sci-fi"})
	require.NoError(t, err)
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Dune", byGenre[0].Name)
	require.Len(t, byGenre[0].Genres, 2)
	assert.Equal(t, "drama", byGenre[0].Genres[0].Slug)

	byCategory, err := titleRepo.List(repositories.TitleFilter{CategorySlug: "film"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	require.NotNil(t, byCategory[0].Category)
	assert.Equal(t, "film", byCategory[0].Category.Slug)

	year := 1980
	byYear, err := titleRepo.List(repositories.TitleFilter{Year: &year})
	require.NoError(t, err)
	require.Len(t, byYear, 1)
	assert.Equal(t, "Old Film", byYear[0].Name)
}

func TestCategoryRepository_DeleteDetachesTitles(t *testing.T) {
	db := setupDB(t)
	categoryRepo := repositories.NewGORMCategoryRepository(db)

	category := &models.Category{Slug: "film", Name: "Film"}
	require.NoError(t, categoryRepo.Create(category))
	title := &models.Title{Name: "Dune", Year: 2021, CategoryID: &category.ID}
	require.NoError(t, db.Create(title).Error)

	require.NoError(t, categoryRepo.Delete("film"))

	var got models.Title
	require.NoError(t, db.First(&got, title.ID).Error)
	assert.Nil(t, got.CategoryID, "titles survive their category")
}

func TestTitleRepository_DeleteCascades(t *testing.T) {
	db := setupDB(t)
	titleRepo := repositories.NewGORMTitleRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	title := seedTitle(t, db, "Dune", 2021)
	author := seedUser(t, db, "alice")
	review := &models.Review{TitleID: title.ID, AuthorID: author.ID, Text: "good", Score: 8}
	require.NoError(t, reviewRepo.Create(review))
	comment := &models.Comment{ReviewID: review.ID, AuthorID: author.ID, Text: "agreed"}
	require.NoError(t, commentRepo.Create(comment))

	require.NoError(t, titleRepo.Delete(title.ID))

	var reviews, comments int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, comments)
}

func TestUserRepository_DeleteCascadesOwnContent(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	title := seedTitle(t, db, "Dune", 2021)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	aliceReview := &models.Review{TitleID: title.ID, AuthorID: alice.ID, Text: "a", Score: 8}
	require.NoError(t, reviewRepo.Create(aliceReview))
	bobReview := &models.Review{TitleID: title.ID, AuthorID: bob.ID, Text: "b", Score: 4}
	require.NoError(t, reviewRepo.Create(bobReview))
	// Bob comments on Alice's review; the comment goes when the review goes.
	require.NoError(t, commentRepo.Create(&models.Comment{ReviewID: aliceReview.ID, AuthorID: bob.ID, Text: "hm"}))

	require.NoError(t, userRepo.Delete("alice"))

	var reviews []models.Review
	require.NoError(t, db.Find(&reviews).Error)
	require.Len(t, reviews, 1)
	assert.Equal(t, bob.ID, reviews[0].AuthorID)

	var comments int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)
}

func TestCommentRepository_ScopedLookup(t *testing.T) {
	db := setupDB(t)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	title := seedTitle(t, db, "Dune", 2021)
	otherTitle := seedTitle(t, db, "Alien", 1979)
	alice := seedUser(t, db, "alice")

	review := &models.Review{TitleID: title.ID, AuthorID: alice.ID, Text: "a", Score: 8}
	require.NoError(t, reviewRepo.Create(review))
	otherReview := &models.Review{TitleID: otherTitle.ID, AuthorID: alice.ID, Text: "b", Score: 6}
	require.NoError(t, reviewRepo.Create(otherReview))

	comment := &models.Comment{ReviewID: review.ID, AuthorID: alice.ID, Text: "note"}
	require.NoError(t, commentRepo.Create(comment))

	got, err := commentRepo.GetByID(review.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "note", got.Text)
	require.NotNil(t, got.Author)
	assert.Equal(t, "alice", got.Author.Username)

	// The same comment is invisible under a review it does not belong to.
	_, err = commentRepo.GetByID(otherReview.ID, comment.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
