package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/leafside/internal/domain/book"
	"github.com/xiebiao/leafside/internal/domain/cart"
	"github.com/xiebiao/leafside/internal/domain/favorite"
	"github.com/xiebiao/leafside/internal/domain/order"
	"github.com/xiebiao/leafside/internal/domain/review"
	"github.com/xiebiao/leafside/internal/domain/user"
	apperrors "github.com/xiebiao/leafside/pkg/errors"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.idx_users_email'"))

	err := repo.Create(context.Background(), user.NewUser("a@b.com", "hash", user.Profile{}))
	assert.ErrorIs(t, err, user.ErrEmailDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateFillsID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(7, 1))

	u := user.NewUser("a@b.com", "hash", user.Profile{})
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, uint(7), u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	t.Run("found with roles", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "email", "password", "roles"}).
			AddRow(1, "admin@leafside.local", "hash", "User,Admin")
		mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").WillReturnRows(rows)

		u, err := repo.FindByEmail(context.Background(), "admin@leafside.local")
		require.NoError(t, err)
		assert.Equal(t, []string{"User", "Admin"}, u.Roles)
		assert.True(t, u.IsAdmin())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByEmail(context.Background(), "nobody@leafside.local")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})

	t.Run("db error wrapped", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnError(errors.New("connection refused"))

		_, err := repo.FindByEmail(context.Background(), "x@leafside.local")
		assert.True(t, apperrors.IsInternal(apperrors.GetAppError(err)))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE `users` SET `deleted_at`").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestSplitRoles(t *testing.T) {
	assert.Equal(t, []string{"User"}, splitRoles(""))
	assert.Equal(t, []string{"User", "Admin"}, splitRoles("User, Admin,"))
}

func TestBookRepository_FindByIDsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	books, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, books)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `books` WHERE \\(title LIKE \\? OR author LIKE \\? OR publisher LIKE \\?\\) AND is_available = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `books` .* ORDER BY price ASC LIMIT \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "isbn", "title", "author", "price", "is_available"}).
			AddRow(3, nil, "Go语言", "Alan", 4999, true))

	books, total, err := repo.List(context.Background(), book.ListParams{
		Page: 1, PageSize: 10, Keyword: "go", OnlyAvailable: true, SortBy: book.SortPriceAsc,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "", books[0].ISBN)
	assert.Equal(t, int64(4999), books[0].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookModel_EmptyISBNStoredAsNull(t *testing.T) {
	m := toBookModel(&book.Book{Title: "t", Author: "a"})
	assert.Nil(t, m.ISBN)

	m = toBookModel(&book.Book{ISBN: "9787111111111"})
	require.NotNil(t, m.ISBN)
	assert.Equal(t, "9787111111111", *m.ISBN)
}

func TestBookRepository_DeleteReleasesISBN(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE `books` SET .*`isbn`=\\?.* WHERE id = \\? AND `books`.`deleted_at` IS NULL").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(ctx, 3))

	mock.ExpectExec("UPDATE `books` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 3), book.ErrBookNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

var cartItemColumns = []string{"id", "cart_id", "book_id", "quantity", "price_snapshot"}

func TestCartRepository_SaveItem(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)

	mock.ExpectExec("INSERT INTO `cart_items` .* ON DUPLICATE KEY UPDATE `quantity`=.*`price_snapshot`=.*`updated_at`=").
		WithArgs(5, 2, 3, 1000, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))

	item := cart.NewItem(5, 2, 3, 1000)
	require.NoError(t, repo.SaveItem(context.Background(), item))
	assert.Equal(t, uint(11), item.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_CreateRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)

	// 另一个请求先创建了购物车，回读已存在的那一个
	mock.ExpectExec("INSERT INTO `carts`").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '1' for key 'carts.idx_carts_user_id'"))
	mock.ExpectQuery("SELECT \\* FROM `carts` WHERE user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
	mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE `cart_items`.`cart_id` = \\?").
		WillReturnRows(sqlmock.NewRows(cartItemColumns).AddRow(8, 5, 2, 1, 1000))

	c := cart.NewCart(1)
	require.NoError(t, repo.Create(context.Background(), c))
	assert.Equal(t, uint(5), c.ID)
	require.Len(t, c.Items, 1)
	assert.Equal(t, int64(1000), *c.Items[0].PriceSnapshot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_NothingToRemove(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM `cart_items` WHERE cart_id = \\? AND book_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	removed, err := repo.DeleteItem(ctx, 5, 2)
	require.NoError(t, err)
	assert.False(t, removed)

	mock.ExpectExec("DELETE FROM `cart_items` WHERE cart_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	n, err := repo.ClearItems(ctx, 5)
	require.NoError(t, err)
	assert.Zero(t, n)

	mock.ExpectExec("DELETE FROM `cart_items` WHERE cart_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 2))
	n, err = repo.ClearItems(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCartRepository_LockByUserID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCartRepository(db)
	ctx := context.Background()

	t.Run("locks cart row before reading items", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `carts` WHERE user_id = \\? .*FOR UPDATE").
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow(5, 1))
		mock.ExpectQuery("SELECT \\* FROM `cart_items` WHERE cart_id = \\? ORDER BY id ASC").
			WithArgs(5).
			WillReturnRows(sqlmock.NewRows(cartItemColumns).AddRow(8, 5, 2, 1, nil).AddRow(9, 5, 3, 2, 1500))

		c, err := repo.LockByUserID(ctx, 1)
		require.NoError(t, err)
		require.Len(t, c.Items, 2)
		assert.Nil(t, c.Items[0].PriceSnapshot)
		assert.Equal(t, 2, c.Items[1].Quantity)
	})

	t.Run("no cart", func(t *testing.T) {
		mock.ExpectQuery("SELECT \\* FROM `carts`").WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.LockByUserID(ctx, 2)
		assert.ErrorIs(t, err, cart.ErrCartNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_UpdateStatusMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOrderRepository(db)

	mock.ExpectExec("UPDATE `orders` SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), &order.Order{ID: 9, Status: order.StatusShipped, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderModelRoundTrip(t *testing.T) {
	o := order.NewOrder("LS1", 5, []order.Item{order.NewItem(1, "Go", 2, 1000)}, order.ShippingInfo{CustomerName: "张三"})
	got := toOrderEntity(toOrderModel(o))
	assert.Equal(t, o.Total, got.Total)
	assert.Equal(t, order.StatusPending, got.Status)
	assert.Equal(t, "张三", got.CustomerName)
	assert.Equal(t, int64(2000), got.Items[0].TotalPrice)
}

func TestReviewRepository_Summary(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectQuery("SELECT COALESCE\\(AVG\\(rating\\), 0\\) AS average, COUNT\\(\\*\\) AS count FROM `reviews` WHERE book_id = \\? AND is_approved = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"average", "count"}).AddRow(4.5, 2))

	r, err := repo.Summary(context.Background(), 3, true)
	require.NoError(t, err)
	assert.Equal(t, uint(3), r.BookID)
	assert.InDelta(t, 4.5, r.Average, 0.0001)
	assert.Equal(t, int64(2), r.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReviewRepository(db)

	mock.ExpectExec("INSERT INTO `reviews`").WillReturnError(gorm.ErrDuplicatedKey)

	rv, err := review.NewReview(1, 2, 5, "好书")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(context.Background(), rv), review.ErrReviewDuplicate)
}

func TestFavoriteRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFavoriteRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `favorites` WHERE user_id = \\? AND book_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	ok, err := repo.Exists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	mock.ExpectExec("DELETE FROM `favorites` WHERE user_id = \\? AND book_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	removed, err := repo.Delete(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, removed)

	mock.ExpectExec("INSERT INTO `favorites`").WillReturnError(errors.New("Duplicate entry '1-2'"))
	assert.ErrorIs(t, repo.Create(ctx, favorite.NewFavorite(1, 2)), favorite.ErrFavoriteDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsRepository_OrdersByStatusFillsZeros(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStatsRepository(db)

	mock.ExpectQuery("SELECT status, COUNT\\(\\*\\) AS count FROM `orders` GROUP BY `status`").
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow(1, 3).AddRow(4, 2))

	got, err := repo.OrdersByStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, int64(3), got[0].Count)
	assert.Equal(t, int64(0), got[1].Count)
	assert.Equal(t, int64(2), got[3].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)
	repo := NewFavoriteRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `favorites`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		if err := repo.Create(ctx, favorite.NewFavorite(1, 2)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	tm := NewTxManager(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := tm.Transaction(context.Background(), func(ctx context.Context) error {
		_, ok := ctx.Value(txKey{}).(*gorm.DB)
		assert.True(t, ok)
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
