package users

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bookstarhq/bookstar/pkg/binder"
	"github.com/bookstarhq/bookstar/pkg/errcodes"
	"github.com/bookstarhq/bookstar/pkg/models"
	"github.com/bookstarhq/bookstar/pkg/ratings"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func newUsersTestContext(t *testing.T, method, path, payload string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	b, err := binder.New()
	require.NoError(t, err)
	e.Binder = b
	e.HTTPErrorHandler = errcodes.NewHandler().Handle

	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rr := httptest.NewRecorder()
	return e.NewContext(req, rr), rr
}

func createTestBook(ctx context.Context, t *testing.T, db *bun.DB) *models.Book {
	t.Helper()

	now := time.Now()
	author := &models.Author{CreatedAt: now, UpdatedAt: now, Name: "Test"}
	_, err := db.NewInsert().Model(author).Exec(ctx)
	require.NoError(t, err)

	book := &models.Book{CreatedAt: now, UpdatedAt: now, Name: "Test Book", AuthorID: author.ID}
	_, err = db.NewInsert().Model(book).Exec(ctx)
	require.NoError(t, err)
	return book
}

func TestHandlerRegister(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db)}

	c, rr := newUsersTestContext(t, http.MethodPost, "/users/register", `{"name":"Test","username":"testuser","password":"Password1!"}`)

	err := h.register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"username":"testuser"`)
	// The password hash never appears in a response body.
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestHandlerRegister_InvalidUsername(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db)}

	c, _ := newUsersTestContext(t, http.MethodPost, "/users/register", `{"name":"Test","username":"ab","password":"Password1!"}`)

	err := h.register(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadRequest, codeErr.HTTPCode)
	assert.Equal(t, "Invalid username format", codeErr.Message)
}

func TestHandlerLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db)}

	_, err := h.userService.Register(context.Background(), RegisterUserOptions{Name: "Test", Username: "testuser", Password: "Password1!"})
	require.NoError(t, err)

	c, _ := newUsersTestContext(t, http.MethodPost, "/users/login", `{"username":"testuser","password":"WrongPass1!"}`)

	err = h.login(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusUnauthorized, codeErr.HTTPCode)
	assert.Equal(t, "Invalid username or password", codeErr.Message)
}

func TestHandlerUpdate_EmptyBody(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db)}

	user, err := h.userService.Register(context.Background(), RegisterUserOptions{Name: "Test", Username: "testuser", Password: "Password1!"})
	require.NoError(t, err)

	c, _ := newUsersTestContext(t, http.MethodPut, "/users/"+strconv.Itoa(user.ID), `{}`)
	c.SetPath("/users/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(strconv.Itoa(user.ID))

	err = h.update(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadRequest, codeErr.HTTPCode)
	assert.Equal(t, "No fields to update", codeErr.Message)
}

func TestHandlerUpdate_NameOnly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db)}

	user, err := h.userService.Register(context.Background(), RegisterUserOptions{Name: "Test", Username: "testuser", Password: "Password1!"})
	require.NoError(t, err)

	c, rr := newUsersTestContext(t, http.MethodPut, "/users/"+strconv.Itoa(user.ID), `{"name":"Changed"}`)
	c.SetPath("/users/:userId")
	c.SetParamNames("userId")
	c.SetParamValues(strconv.Itoa(user.ID))

	err = h.update(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"name":"Changed"`)
	assert.Contains(t, rr.Body.String(), `"username":"testuser"`)
}

func TestHandlerRateBook_ThenRetrieveStar(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db), ratingService: ratings.NewService(db)}
	ctx := context.Background()

	user, err := h.userService.Register(ctx, RegisterUserOptions{Name: "Test", Username: "testuser", Password: "Password1!"})
	require.NoError(t, err)
	book := createTestBook(ctx, t, db)

	rate := func(star string) (echo.Context, *httptest.ResponseRecorder) {
		c, rr := newUsersTestContext(t, http.MethodPost, "/users/1/star/1", `{"star":`+star+`}`)
		c.SetPath("/users/:userId/star/:bookId")
		c.SetParamNames("userId", "bookId")
		c.SetParamValues(strconv.Itoa(user.ID), strconv.Itoa(book.ID))
		return c, rr
	}

	c, rr := rate("4")
	require.NoError(t, h.rateBook(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Star rating updated successfully")

	// Rating the same book again overwrites the previous star.
	c, _ = rate("2")
	require.NoError(t, h.rateBook(c))

	c, rr = newUsersTestContext(t, http.MethodGet, "/users/1/star/1", "")
	c.SetPath("/users/:userId/star/:bookId")
	c.SetParamNames("userId", "bookId")
	c.SetParamValues(strconv.Itoa(user.ID), strconv.Itoa(book.ID))

	require.NoError(t, h.retrieveStar(c))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "2", rr.Body.String())
}

func TestHandlerRateBook_OutOfRange(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db), ratingService: ratings.NewService(db)}
	ctx := context.Background()

	user, err := h.userService.Register(ctx, RegisterUserOptions{Name: "Test", Username: "testuser", Password: "Password1!"})
	require.NoError(t, err)
	book := createTestBook(ctx, t, db)

	c, _ := newUsersTestContext(t, http.MethodPost, "/users/1/star/1", `{"star":6}`)
	c.SetPath("/users/:userId/star/:bookId")
	c.SetParamNames("userId", "bookId")
	c.SetParamValues(strconv.Itoa(user.ID), strconv.Itoa(book.ID))

	err = h.rateBook(c)
	require.Error(t, err)

	var codeErr *errcodes.Error
	require.ErrorAs(t, err, &codeErr)
	assert.Equal(t, http.StatusBadRequest, codeErr.HTTPCode)
	assert.Equal(t, "Invalid star rating. Please provide a value between 1 and 5.", codeErr.Message)
}

func TestHandlerRetrieveStar_MissingRating(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	h := &handler{userService: NewService(db), ratingService: ratings.NewService(db)}
	ctx := context.Background()

	user, err := h.userService.Register(ctx, RegisterUserOptions{Name: "Test", Username: "testuser", Password: "Password1!"})
	require.NoError(t, err)
	book := createTestBook(ctx, t, db)

	c, _ := newUsersTestContext(t, http.MethodGet, "/users/1/star/1", "")
	c.SetPath("/users/:userId/star/:bookId")
	c.SetParamNames("userId", "bookId")
	c.SetParamValues(strconv.Itoa(user.ID), strconv.Itoa(book.ID))

	err = h.retrieveStar(c)
	assert.ErrorIs(t, err, errcodes.NotFound("Rating"))
}
