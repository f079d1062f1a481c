package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hai-lomilomi/backend/internal/models"
)

// CredentialService is the dev-mode identity backend (AUTH_MODE=jwt):
// in-memory email/password accounts whose CheckPassword result feeds the
// JWT issuer. Production identity is Firebase Auth; this never runs there.
type CredentialService struct {
	mu      sync.RWMutex
	byID    map[string]*models.Credential
	byEmail map[string]string // email -> id
}

func NewCredentialService() *CredentialService {
	return &CredentialService{
		byID:    make(map[string]*models.Credential),
		byEmail: make(map[string]string),
	}
}

func (s *CredentialService) Create(email, password string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cred := &models.Credential{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	s.byID[cred.ID] = cred
	s.byEmail[cred.Email] = cred.ID
	return cred, nil
}

func (s *CredentialService) CheckPassword(email, password string) (*models.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.byEmail[email]
	if !exists {
		return nil, ErrCredentialNotFound
	}
	cred := s.byID[id]

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}
	return cred, nil
}
