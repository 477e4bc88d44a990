package store

import (
	"context"

	"cobropos/m/domain"
)

const materialColumns = `id, name, existence, price, supplier, buy_link, last_income, image_path`

func (s *Store) ListMaterials(ctx context.Context) ([]domain.Material, error) {
	materials := []domain.Material{}
	err := s.selectAll(ctx, &materials, `SELECT `+materialColumns+` FROM materials ORDER BY id`)
	return materials, err
}

func (s *Store) GetMaterial(ctx context.Context, id int64) (domain.Material, error) {
	var m domain.Material
	err := s.get(ctx, &m, `SELECT `+materialColumns+` FROM materials WHERE id = ?`, id)
	return m, err
}

func (s *Store) SearchMaterials(ctx context.Context, substring string) ([]domain.Material, error) {
	materials := []domain.Material{}
	err := s.selectAll(ctx, &materials, `SELECT `+materialColumns+` FROM materials WHERE LOWER(name) LIKE ? ESCAPE '\' ORDER BY name`, likePattern(substring))
	return materials, err
}

func (s *Store) CreateMaterial(ctx context.Context, in domain.MaterialInput) (domain.Material, error) {
	if err := s.ensureUnique(ctx, "materials", "name", "name", *in.Name, 0); err != nil {
		return domain.Material{}, err
	}
	id, err := s.insert(ctx, `INSERT INTO materials (name, existence, price, supplier, buy_link, last_income, image_path) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		*in.Name, *in.Existence, *in.Price, *in.Supplier, in.BuyLink, *in.LastIncome, in.ImagePath)
	if err != nil {
		return domain.Material{}, mapWriteError(err, "name")
	}
	return s.GetMaterial(ctx, id)
}

func (s *Store) UpdateMaterial(ctx context.Context, id int64, patch domain.MaterialPatch) (domain.Material, error) {
	if _, err := s.GetMaterial(ctx, id); err != nil {
		return domain.Material{}, err
	}
	var sets setList
	if patch.Name != nil {
		if err := s.ensureUnique(ctx, "materials", "name", "name", *patch.Name, id); err != nil {
			return domain.Material{}, err
		}
		sets.add("name", *patch.Name)
	}
	if patch.Existence != nil {
		sets.add("existence", *patch.Existence)
	}
	if patch.Price != nil {
		sets.add("price", *patch.Price)
	}
	if patch.Supplier != nil {
		sets.add("supplier", *patch.Supplier)
	}
	if patch.BuyLink != nil {
		sets.add("buy_link", *patch.BuyLink)
	}
	if patch.LastIncome != nil {
		sets.add("last_income", *patch.LastIncome)
	}
	if patch.ImagePath != nil {
		sets.add("image_path", *patch.ImagePath)
	}
	if err := s.update(ctx, "materials", id, sets); err != nil {
		return domain.Material{}, mapWriteError(err, "name")
	}
	return s.GetMaterial(ctx, id)
}

func (s *Store) DeleteMaterial(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "materials", id)
}
