package service

import (
	"context"
	"fmt"
	"strings"

	"findjob-backend/internal/apperror"
	"findjob-backend/internal/model"
	"findjob-backend/internal/policy"
	"findjob-backend/internal/storage"
	"findjob-backend/internal/validation"

	"gorm.io/gorm"
)

// EmployerService reads and edits employer profiles.
type EmployerService struct{ Deps }

// UpdateEmployerInput is the body of PATCH /employers/{id}. Nil fields are left unchanged.
type UpdateEmployerInput struct {
	Name        *string            `json:"name" validate:"omitempty,notblank,max=255"`
	TaxCode     *string            `json:"tax_code" validate:"omitempty,max=50"`
	Location    *string            `json:"location" validate:"omitempty,max=255"`
	Coordinates *model.Coordinates `json:"coordinates"`
}

// List return every employer. Only administrators may list.
func (s *EmployerService) List(ctx context.Context, caller *model.User) ([]model.Employer, error) {
	if err := requireUser(caller); err != nil {
		return nil, err
	}
	if !caller.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	employers := []model.Employer{}
	if err := s.DB.WithContext(ctx).Preload("Images").Order("id ASC").Find(&employers).Error; err != nil {
		return nil, err
	}
	return employers, nil
}

// Get return one employer. Profiles are public.
func (s *EmployerService) Get(ctx context.Context, id uint) (model.Employer, error) {
	return s.find(s.DB.WithContext(ctx), id)
}

// Update edits an employer profile on behalf of its owner or an administrator.
func (s *EmployerService) Update(ctx context.Context, caller *model.User, id uint, in UpdateEmployerInput) (model.Employer, error) {
	if err := requireUser(caller); err != nil {
		return model.Employer{}, err
	}
	if err := validation.Struct(&in); err != nil {
		return model.Employer{}, err
	}

	var out model.Employer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		employer, err := s.find(tx, id)
		if err != nil {
			return err
		}
		if err := s.Authz.Authorize(caller, policy.ActionUpdate, &employer); err != nil {
			return err
		}

		if in.Name != nil {
			employer.Name = strings.TrimSpace(*in.Name)
		}
		if in.TaxCode != nil {
			employer.TaxCode = strings.TrimSpace(*in.TaxCode)
		}
		if in.Location != nil {
			employer.Location = strings.TrimSpace(*in.Location)
		}
		if in.Coordinates != nil {
			employer.Coordinates = in.Coordinates
		}
		if err := tx.Model(&model.Employer{}).Where("id = ?", employer.ID).Updates(map[string]any{
			"name":        employer.Name,
			"tax_code":    employer.TaxCode,
			"location":    employer.Location,
			"coordinates": employer.Coordinates,
		}).Error; err != nil {
			return err
		}
		out = employer
		return nil
	})
	return out, err
}

// MapData return the employer location for map display.
func (s *EmployerService) MapData(ctx context.Context, id uint) (model.MapData, error) {
	employer, err := s.Get(ctx, id)
	if err != nil {
		return model.MapData{}, err
	}
	if employer.Coordinates == nil {
		return model.MapData{}, apperror.ErrNotFound
	}
	return model.MapData{
		Location:         employer.Location,
		Coordinates:      *employer.Coordinates,
		GoogleMapsAPIKey: s.MapsAPIKey,
	}, nil
}

// AddImage appends a picture to the employer gallery.
func (s *EmployerService) AddImage(ctx context.Context, caller *model.User, id uint, data []byte, extension string) (model.EmployerImage, error) {
	if err := requireUser(caller); err != nil {
		return model.EmployerImage{}, err
	}
	employer, err := s.Get(ctx, id)
	if err != nil {
		return model.EmployerImage{}, err
	}
	if err := s.Authz.Authorize(caller, policy.ActionUpdate, &employer); err != nil {
		return model.EmployerImage{}, err
	}

	image := model.EmployerImage{EmployerID: employer.ID}
	if err := s.Store.Persist(ctx, &image.File, data, extension, storage.ImagePrefix); err != nil {
		return model.EmployerImage{}, fmt.Errorf("store employer image: %w", err)
	}
	if err := s.DB.WithContext(ctx).Create(&image).Error; err != nil {
		return model.EmployerImage{}, err
	}
	return image, nil
}

func (s *EmployerService) find(db *gorm.DB, id uint) (model.Employer, error) {
	var employer model.Employer
	if err := db.Preload("Images").First(&employer, id).Error; err != nil {
		return model.Employer{}, notFound(err)
	}
	return employer, nil
}
