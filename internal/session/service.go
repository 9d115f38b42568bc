package session

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/intrackhq/intrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrNoSession = errors.New("no active session")

// Service issues and resolves login sessions. The browser cookie holds an
// HS256-signed token naming a session row; the row stores only a hash of the
// random session secret, and deleting the row revokes the login immediately.
type Service struct {
	db     *gorm.DB
	secret []byte
}

func NewService(db *gorm.DB, secret string) *Service {
	return &Service{db: db, secret: []byte(secret)}
}

// Issue creates a session row for the user and returns the signed cookie value.
func (s *Service) Issue(userID uuid.UUID) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: hashToken(rawToken),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	claims := jwt.MapClaims{
		"sid": record.ID.String(),
		"sub": userID.String(),
		"tok": rawToken,
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Resolve verifies a cookie value and loads the backing session row.
func (s *Service) Resolve(cookieValue string) (*models.Session, error) {
	if cookieValue == "" {
		return nil, ErrNoSession
	}

	token, err := jwt.Parse(cookieValue, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrNoSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrNoSession
	}
	return s.FromClaims(claims)
}

// FromClaims loads the session row referenced by already-verified claims.
func (s *Service) FromClaims(claims jwt.MapClaims) (*models.Session, error) {
	sid, _ := claims["sid"].(string)
	rawToken, _ := claims["tok"].(string)
	if sid == "" || rawToken == "" {
		return nil, ErrNoSession
	}

	sessionID, err := uuid.Parse(sid)
	if err != nil {
		return nil, ErrNoSession
	}

	var record models.Session
	if err := s.db.First(&record, "id = ?", sessionID).Error; err != nil {
		return nil, ErrNoSession
	}
	if record.TokenHash != hashToken(rawToken) {
		return nil, ErrNoSession
	}
	return &record, nil
}

// Destroy removes a single session row.
func (s *Service) Destroy(sessionID uuid.UUID) error {
	return s.db.Delete(&models.Session{}, "id = ?", sessionID).Error
}

// DestroyAllForUser removes every session of a user, e.g. on account deletion.
func (s *Service) DestroyAllForUser(userID uuid.UUID) error {
	return s.db.Delete(&models.Session{}, "user_id = ?", userID).Error
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
