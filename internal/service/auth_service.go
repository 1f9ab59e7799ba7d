package service

import (
	"context"
	"errors"
	"time"

	"matricare/maternal-app/internal/domain"
	"matricare/maternal-app/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidRefreshToken  = errors.New("invalid or expired refresh token")
)

// RegisterParams carries the fields accepted at registration.
type RegisterParams struct {
	FullName    string
	Email       string
	Password    string
	Role        domain.Role
	PhoneNumber string
	Village     string
	DateOfBirth *time.Time
	BloodGroup  string
}

// TokenPair is an access token plus the refresh token that can renew it.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo          repository.UserRepository
	jwtSecret         string
	jwtExpiration     time.Duration
	refreshExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string, jwtExpiration, refreshExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour
	}
	if refreshExpiration <= 0 {
		refreshExpiration = 30 * 24 * time.Hour
	}
	return &authService{
		userRepo:          userRepo,
		jwtSecret:         jwtSecret,
		jwtExpiration:     jwtExpiration,
		refreshExpiration: refreshExpiration,
	}
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, params RegisterParams) (*domain.User, error) {
	// 1. Basic input validation
	if params.FullName == "" || params.Email == "" || params.Password == "" || params.Role == "" {
		return nil, errors.New("name, email, password, and role cannot be empty")
	}
	switch params.Role {
	case domain.RoleMother, domain.RoleDoctor, domain.RoleMidwife:
	default:
		return nil, errors.New("role must be mother, doctor or midwife")
	}

	// 2. Check if the email is already taken
	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	// 3. Hash the password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	// 4. Create and persist the user
	user := &domain.User{
		FullName:     params.FullName,
		Email:        params.Email,
		PasswordHash: string(hashedPassword),
		Role:         params.Role,
		PhoneNumber:  params.PhoneNumber,
		Village:      params.Village,
		DateOfBirth:  params.DateOfBirth,
		BloodGroup:   params.BloodGroup,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		// The unique email index closes the race between the GetByEmail check
		// and this insert.
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}
	user.ID = userID

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and token issuance.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrAuthenticationFailed
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrAuthenticationFailed
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	user.PasswordHash = ""
	user.RefreshToken = ""
	return tokens, user, nil
}

// Refresh validates a refresh token against the stored one and issues a new
// token pair (rotating the refresh token).
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, ErrInvalidRefreshToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidRefreshToken
	}

	userID, err := ParseObjectID(claims.Subject)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	// The presented token must match the one on record; a logout or a prior
	// rotation invalidates older tokens.
	if user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(ctx, user)
}

// Logout clears the stored refresh token so it can no longer be redeemed.
func (s *authService) Logout(ctx context.Context, userID string) error {
	id, err := ParseObjectID(userID)
	if err != nil {
		return err
	}
	return s.userRepo.SetRefreshToken(ctx, id, "")
}

// --- JWT Helpers ---

// jwtClaims defines the structure of the access-token payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// issueTokens generates an access/refresh token pair and persists the
// refresh token on the user document.
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, ErrTokenGeneration
	}

	if err := s.userRepo.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// generateAccessToken creates a short-lived JWT carrying the user's ID and role.
func (s *authService) generateAccessToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID.Hex(),
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "maternal-app",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// generateRefreshToken creates a long-lived JWT holding only the user ID.
func (s *authService) generateRefreshToken(user *domain.User) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   user.ID.Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshExpiration)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		Issuer:    "maternal-app",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
