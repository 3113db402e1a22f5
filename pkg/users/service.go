package users

import (
	"context"
	"database/sql"
	"time"

	"github.com/bookstarhq/bookstar/pkg/errcodes"
	"github.com/bookstarhq/bookstar/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost factor for bcrypt hashing.
const BcryptCost = 12

// Service handles user operations.
type Service struct {
	db *bun.DB
}

// NewService creates a new users service.
func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

// RetrieveUser gets a user by ID. Zero rows is a not-found; more than one row
// for a primary key is a data-integrity anomaly and surfaces as a server
// error.
func (s *Service) RetrieveUser(ctx context.Context, id int) (*models.User, error) {
	users := []*models.User{}

	err := s.db.
		NewSelect().
		Model(&users).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	switch len(users) {
	case 0:
		return nil, errcodes.NotFound("User")
	case 1:
		return users[0], nil
	default:
		return nil, errors.Errorf("multiple users found with id %d", id)
	}
}

// Authenticate validates credentials and returns the user if valid. A missing
// user and a wrong password produce the same error so the response never
// hints at which half was wrong.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user := &models.User{}

	err := s.db.
		NewSelect().
		Model(user).
		Where("u.username = ?", username).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.Unauthorized("Invalid username or password")
		}
		return nil, errors.WithStack(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errcodes.Unauthorized("Invalid username or password")
	}

	return user, nil
}

// RegisterUserOptions contains options for registering a user.
type RegisterUserOptions struct {
	Name      string
	Surname   *string
	Username  string
	Password  string
	ImageLink *string
}

// Register validates and creates a new user, returning the freshly reloaded
// row. Checks run in a fixed order and the first failure aborts with its own
// message.
func (s *Service) Register(ctx context.Context, opts RegisterUserOptions) (*models.User, error) {
	if opts.Name == "" {
		return nil, errcodes.ValidationError("Name is required")
	}
	if !isValidUsername(opts.Username) {
		return nil, errcodes.ValidationError("Invalid username format")
	}
	if !isValidPassword(opts.Password) {
		return nil, errcodes.ValidationError("Invalid password format")
	}

	taken, err := s.usernameTaken(ctx, opts.Username, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errcodes.ValidationError("Username already exists")
	}

	hash, err := hashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     opts.Username,
		PasswordHash: hash,
		Name:         opts.Name,
		Surname:      opts.Surname,
		ImageLink:    opts.ImageLink,
	}

	_, err = s.db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.RetrieveUser(ctx, user.ID)
}

// UpdateUserOptions carries the optional fields of a partial update. Nil
// means "leave unchanged".
type UpdateUserOptions struct {
	Username  *string
	Password  *string
	Name      *string
	Surname   *string
	ImageLink *string
}

// UpdatePartial applies a partial update to an existing user. All validation
// runs before any column is staged, so a single failing check aborts the
// whole update and nothing is partially applied. Supplied fields are staged
// in a fixed order and written with one parameterized UPDATE scoped to the
// target id; an update with no fields at all is rejected.
func (s *Service) UpdatePartial(ctx context.Context, id int, opts UpdateUserOptions) (*models.User, error) {
	user, err := s.RetrieveUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if opts.Username != nil {
		if !isValidUsername(*opts.Username) {
			return nil, errcodes.ValidationError("Invalid username format")
		}
		taken, err := s.usernameTaken(ctx, *opts.Username, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errcodes.ValidationError("Username already exists")
		}
	}
	if opts.Password != nil && !isValidPassword(*opts.Password) {
		return nil, errcodes.ValidationError("Invalid password format")
	}

	columns := []string{}

	if opts.Username != nil {
		user.Username = *opts.Username
		columns = append(columns, "username")
	}
	if opts.Password != nil {
		hash, err := hashPassword(*opts.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		columns = append(columns, "password_hash")
	}
	if opts.Name != nil {
		user.Name = *opts.Name
		columns = append(columns, "name")
	}
	if opts.Surname != nil {
		user.Surname = opts.Surname
		columns = append(columns, "surname")
	}
	if opts.ImageLink != nil {
		user.ImageLink = opts.ImageLink
		columns = append(columns, "image_link")
	}

	if len(columns) == 0 {
		return nil, errcodes.ValidationError("No fields to update")
	}

	user.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err = s.db.
		NewUpdate().
		Model(user).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return s.RetrieveUser(ctx, id)
}

// usernameTaken reports whether the username is already in use, optionally
// excluding one user id (the user being updated).
func (s *Service) usernameTaken(ctx context.Context, username string, excludeID *int) (bool, error) {
	q := s.db.
		NewSelect().
		Model((*models.User)(nil)).
		Where("username = ?", username)
	if excludeID != nil {
		q = q.Where("id != ?", *excludeID)
	}

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return exists, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return string(hash), nil
}
