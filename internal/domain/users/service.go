package users

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) FindCredentialsByUsername(ctx context.Context, username string) (Credentials, error) {
	return s.Store.FindCredentialsByUsername(ctx, username)
}

func (s *Service) Find(ctx context.Context, id string) (User, error) {
	return s.Store.Find(ctx, id)
}

func (s *Service) List(ctx context.Context, role string) ([]User, error) {
	return s.Store.List(ctx, role)
}

func (s *Service) Create(ctx context.Context, username, passwordHash, role, fullName, email, department, position string) (string, error) {
	if !ValidRole(role) {
		return "", ErrInvalidRole
	}
	return s.Store.Create(ctx, username, passwordHash, role, fullName, email, department, position)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	return s.Store.UpdateStatus(ctx, id, status)
}
