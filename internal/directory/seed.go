package directory

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spec-kit/partner-hub/internal/config"
	"github.com/spec-kit/partner-hub/internal/domain"
)

// SeedDefault returns the built-in development fixture.
func SeedDefault() []domain.BusinessEntity {
	return []domain.BusinessEntity{
		{
			ID: "biz-fitness", Name: "365 GYM", Vertical: domain.VerticalFitness, City: "Nitra",
			Members: []domain.Member{
				{UserID: "u1", Name: "Mimo", Email: "mimo@oneapp.sk", Role: domain.RoleOwner, Status: domain.MemberStatusActive},
				{UserID: "u2", Name: "Eva", Email: "eva@oneapp.sk", Role: domain.RoleManager, Status: domain.MemberStatusActive},
			},
		},
		{
			ID: "biz-gastro", Name: "365 RESTAURANT", Vertical: domain.VerticalGastro, City: "Nitra",
			Members: []domain.Member{
				{UserID: "u1", Name: "Mimo", Email: "mimo@oneapp.sk", Role: domain.RoleOwner, Status: domain.MemberStatusActive},
				{UserID: "u2", Name: "Eva", Email: "eva@oneapp.sk", Role: domain.RoleManager, Status: domain.MemberStatusActive},
			},
		},
	}
}

type seedMember struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type seedBusiness struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Vertical string       `json:"vertical"`
	City     string       `json:"city"`
	Members  []seedMember `json:"members"`
}

// LoadSeed reads business entities from a JSON seed file.
func LoadSeed(path string) ([]domain.BusinessEntity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seeds []seedBusiness
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	out := make([]domain.BusinessEntity, 0, len(seeds))
	for _, s := range seeds {
		entity := domain.BusinessEntity{
			ID:       s.ID,
			Name:     s.Name,
			Vertical: domain.Vertical(s.Vertical),
			City:     s.City,
		}
		for _, m := range s.Members {
			status := domain.MemberStatus(m.Status)
			if status == "" {
				status = domain.MemberStatusActive
			}
			entity.Members = append(entity.Members, domain.Member{
				UserID: m.UserID,
				Name:   m.Name,
				Email:  m.Email,
				Role:   domain.Role(m.Role),
				Status: status,
			})
		}
		out = append(out, entity)
	}
	return out, nil
}

// SeedFromConfig loads the configured seed file, falling back to the
// built-in fixture when no path is set.
func SeedFromConfig(cfg config.DirectoryConfig) ([]domain.BusinessEntity, error) {
	if cfg.SeedPath == "" {
		return SeedDefault(), nil
	}
	return LoadSeed(cfg.SeedPath)
}
