// Package seeds loads bootstrap data (root administrators and the package
// catalogue) from a YAML file.
package seeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orris-inc/tenantdesk/internal/domain/servicepackage"
	"github.com/orris-inc/tenantdesk/internal/domain/shared"
	"github.com/orris-inc/tenantdesk/internal/domain/user"
	"github.com/orris-inc/tenantdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/tenantdesk/internal/shared/biztime"
)

type RootAdmin struct {
	Email    string `yaml:"email"`
	FullName string `yaml:"full_name"`
	Password string `yaml:"password"`
}

type Package struct {
	Name         string         `yaml:"name"`
	Description  string         `yaml:"description"`
	Price        float64        `yaml:"price"`
	BillingCycle string         `yaml:"billing_cycle"`
	Features     map[string]any `yaml:"features"`
	Inactive     bool           `yaml:"inactive"`
}

type File struct {
	RootAdmins []RootAdmin `yaml:"root_admins"`
	Packages   []Package   `yaml:"packages"`
}

type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Result counts rows inserted; existing rows are left alone.
type Result struct {
	Admins   int
	Packages int
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &f, nil
}

// Apply inserts what is missing. Users match by email and packages by name,
// so running it twice is harmless.
func Apply(ctx context.Context, db *gorm.DB, f *File, hasher PasswordHasher) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, a := range f.RootAdmins {
			created, err := seedRootAdmin(tx, a, hasher)
			if err != nil {
				return fmt.Errorf("root admin %s: %w", a.Email, err)
			}
			if created {
				res.Admins++
			}
		}
		for _, p := range f.Packages {
			created, err := seedPackage(tx, p)
			if err != nil {
				return fmt.Errorf("package %s: %w", p.Name, err)
			}
			if created {
				res.Packages++
			}
		}
		return nil
	})
	return res, err
}

func seedRootAdmin(tx *gorm.DB, a RootAdmin, hasher PasswordHasher) (bool, error) {
	email, err := user.NormalizeEmail(a.Email)
	if err != nil {
		return false, err
	}

	var existing models.UserModel
	err = tx.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if !existing.IsRootAdmin {
			return false, tx.Model(&existing).Update("is_root_admin", true).Error
		}
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := hasher.Hash(a.Password)
	if err != nil {
		return false, err
	}
	name := a.FullName
	if name == "" {
		name = "Administrator"
	}
	now := biztime.NowUTC()
	return true, tx.Create(&models.UserModel{
		Email:        email,
		FullName:     name,
		PasswordHash: hash,
		IsRootAdmin:  true,
		UserType:     string(user.UserTypeDirect),
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}

func seedPackage(tx *gorm.DB, p Package) (bool, error) {
	cycle, err := servicepackage.ParseBillingCycle(p.BillingCycle)
	if err != nil {
		return false, err
	}
	pkg, err := servicepackage.NewServicePackage(p.Name, p.Description, shared.HundredthsFromFloat(p.Price), cycle, p.Features)
	if err != nil {
		return false, err
	}

	var count int64
	if err := tx.Model(&models.ServicePackageModel{}).Where("name = ?", pkg.Name()).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	features, err := json.Marshal(pkg.Features())
	if err != nil {
		return false, err
	}
	now := biztime.NowUTC()
	return true, tx.Create(&models.ServicePackageModel{
		Name:         pkg.Name(),
		Description:  pkg.Description(),
		Price:        int64(pkg.Price()),
		BillingCycle: pkg.BillingCycle().String(),
		Features:     datatypes.JSON(features),
		IsActive:     !p.Inactive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
}
