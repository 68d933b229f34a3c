package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"coachly/internal/domain/user"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/infra"
	"coachly/internal/pkg/errs"
	"coachly/internal/pkg/jwt"
	"coachly/internal/pkg/password"
	"coachly/internal/usecase/queries"
)

var (
	ErrUserNotFound         = errs.New("user not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrUserInactive         = errs.New("user inactive")
	ErrEmailTaken           = errs.New("email already registered")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type LoginResult struct {
	UserID    uuid.UUID
	TokenPair jwt.TokenPair
}

type AuthCommands interface {
	Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.AuthorizedUserView, error)
	Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (jwt.TokenPair, error)
}

type authCommandsImpl struct {
	userRepo     UserWriteRepository
	calendarRepo CalendarRepository
	readStore    queries.UserReadStore
	jwtService   *jwt.Service
	db           *pgxpool.Pool
}

func NewAuthCommands(
	userRepo UserWriteRepository,
	calendarRepo CalendarRepository,
	readStore queries.UserReadStore,
	jwtService *jwt.Service,
	db *pgxpool.Pool,
) AuthCommands {
	return &authCommandsImpl{
		userRepo:     userRepo,
		calendarRepo: calendarRepo,
		readStore:    readStore,
		jwtService:   jwtService,
		db:           db,
	}
}

// Register creates the account and, for coaches, the calendar their
// events and rules will hang off.
func (a *authCommandsImpl) Register(ctx context.Context, req reqdto.RegisterRequest) (*queries.AuthorizedUserView, error) {
	email, err := user.NewEmail(req.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	role, err := user.NewRole(req.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	hash, err := password.HashPassword(req.Password)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	entity, err := user.NewUser(email, hash, role, req.DisplayName, req.Timezone)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tx, err := a.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && rollbackErr.Error() != "tx is closed" {
			slog.Warn("failed to rollback transaction", "error", rollbackErr)
		}
	}()

	userID, err := a.userRepo.Create(ctx, tx, entity)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if role == user.RoleCoach {
		if _, err := a.calendarRepo.Create(ctx, tx, userID, req.DisplayName, entity.Timezone()); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return nil, errs.Mark(commitErr, ErrDatabaseOperationFailed)
	}

	return a.readStore.FindByID(ctx, userID)
}

func (a *authCommandsImpl) Login(ctx context.Context, req reqdto.LoginRequest) (*LoginResult, error) {
	credentials, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	view, err := a.validateUser(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	tokenPair, err := a.jwtService.GenerateTokenPair(view.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if updateErr := a.userRepo.UpdateLastLogin(ctx, a.db, view.ID); updateErr != nil {
		// Not critical; the login itself succeeded.
		slog.Warn("failed to update last login", "user_id", view.ID, "error", updateErr.Error())
	}

	return &LoginResult{UserID: view.ID, TokenPair: tokenPair}, nil
}

func (a *authCommandsImpl) validateUser(ctx context.Context, credentials user.Credentials) (*queries.AuthorizedUserView, error) {
	view, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}
	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}
	return view, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (jwt.TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken, jwt.TokenRefresh)
	if err != nil {
		return jwt.TokenPair{}, errs.Mark(err, ErrTokenValidation)
	}

	view, err := a.readStore.FindByID(ctx, claims.UserID)
	if err != nil {
		return jwt.TokenPair{}, errs.Mark(err, ErrTokenValidation)
	}
	if !view.IsActive {
		return jwt.TokenPair{}, ErrUserInactive
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return jwt.TokenPair{}, errs.Mark(err, ErrTokenValidation)
	}

	tokenPair, err := a.jwtService.GenerateTokenPair(view.ID, role)
	if err != nil {
		return jwt.TokenPair{}, errs.Mark(err, ErrTokenGeneration)
	}
	return tokenPair, nil
}
