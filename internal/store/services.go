package store

import (
	"context"

	"cobropos/m/domain"
)

const serviceColumns = `id, name, description, commission, image_path`

func (s *Store) ListServices(ctx context.Context) ([]domain.Service, error) {
	services := []domain.Service{}
	err := s.selectAll(ctx, &services, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	return services, err
}

func (s *Store) GetService(ctx context.Context, id int64) (domain.Service, error) {
	var svc domain.Service
	err := s.get(ctx, &svc, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	return svc, err
}

func (s *Store) SearchServices(ctx context.Context, substring string) ([]domain.Service, error) {
	services := []domain.Service{}
	err := s.selectAll(ctx, &services, `SELECT `+serviceColumns+` FROM services WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name`, likePattern(substring))
	return services, err
}

func (s *Store) CreateService(ctx context.Context, in domain.ServiceInput) (domain.Service, error) {
	if err := s.ensureUnique(ctx, "services", "name", "name", *in.Name, 0); err != nil {
		return domain.Service{}, err
	}
	id, err := s.insert(ctx, `INSERT INTO services (name, description, commission, image_path) VALUES (?, ?, ?, ?)`,
		*in.Name, *in.Description, *in.Commission, in.ImagePath)
	if err != nil {
		return domain.Service{}, mapWriteError(err, "name")
	}
	return s.GetService(ctx, id)
}

func (s *Store) UpdateService(ctx context.Context, id int64, patch domain.ServicePatch) (domain.Service, error) {
	if _, err := s.GetService(ctx, id); err != nil {
		return domain.Service{}, err
	}
	var sets setList
	if patch.Name != nil {
		if err := s.ensureUnique(ctx, "services", "name", "name", *patch.Name, id); err != nil {
			return domain.Service{}, err
		}
		sets.add("name", *patch.Name)
	}
	if patch.Description != nil {
		sets.add("description", *patch.Description)
	}
	if patch.Commission != nil {
		sets.add("commission", *patch.Commission)
	}
	if patch.ImagePath != nil {
		sets.add("image_path", *patch.ImagePath)
	}
	if err := s.update(ctx, "services", id, sets); err != nil {
		return domain.Service{}, mapWriteError(err, "name")
	}
	return s.GetService(ctx, id)
}

func (s *Store) DeleteService(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "services", id)
}
