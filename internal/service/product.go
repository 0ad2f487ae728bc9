// Package service implements owner-scoped product lifecycle: every read,
// update and delete is keyed by (product id, owner id), so a caller can never
// observe whether a foreign product exists.
package service

import (
	"errors"
	"fmt"
	"log"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/storage"

	"gorm.io/gorm"
)

// ProductInput carries the mutable product fields.
type ProductInput struct {
	Name        string
	Category    string
	Price       int64
	Stock       int
	Description string
}

// ProductService drives product rows and their image files together.
type ProductService struct {
	db    *gorm.DB
	files *storage.AttachmentStore
}

func NewProductService(db *gorm.DB, files *storage.AttachmentStore) *ProductService {
	return &ProductService{db: db, files: files}
}

// List returns every product of the owner, newest first.
func (s *ProductService) List(ownerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get loads one product scoped by owner. Missing and not-owned are the same
// answer: (nil, nil).
func (s *ProductService) Get(id, ownerID uint) (*models.Product, error) {
	var p models.Product
	err := s.db.Where("id = ? AND user_id = ?", id, ownerID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// Create persists the product right away, before any image upload, so the
// row id exists to key the attachment name.
func (s *ProductService) Create(ownerID uint, in ProductInput) (*models.Product, error) {
	p := models.Product{
		UserID:      ownerID,
		Name:        in.Name,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		Description: in.Description,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &p, nil
}

// AttachImage stores a new image for p and swaps the reference. Order
// matters: store the new file, point the row at it, then drop the old file.
// The row never references a missing file; the worst crash window leaves an
// orphan old file behind. A store failure aborts before the row is touched.
func (s *ProductService) AttachImage(p *models.Product, content []byte, originalName string) error {
	if len(content) == 0 {
		return nil
	}

	name, err := s.files.Store(content, originalName, p.ID)
	if err != nil {
		return err
	}

	old := p.Image
	if err := s.db.Model(p).Update("image", name).Error; err != nil {
		// row untouched; remove the file we just wrote
		_, _ = s.files.Delete(name)
		return fmt.Errorf("update image ref: %w", err)
	}
	p.Image = name

	if old != "" {
		if ok, derr := s.files.Delete(old); !ok && derr != nil {
			log.Printf("orphaned old image %s: %v", old, derr)
		}
	}
	return nil
}

// Update applies in to the owner's product. When the product is missing or
// owned by someone else this is a silent no-op: (nil, nil), no error.
func (s *ProductService) Update(id, ownerID uint, in ProductInput) (*models.Product, error) {
	p, err := s.Get(id, ownerID)
	if err != nil || p == nil {
		return nil, err
	}

	p.Name = in.Name
	p.Category = in.Category
	p.Price = in.Price
	p.Stock = in.Stock
	p.Description = in.Description
	if err := s.db.Save(p).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

// Delete removes the image file first, then the row. A file fault is logged
// and does not block the row deletion: the record store wins over filesystem
// cleanliness, at the price of a possible orphaned file. Returns whether a
// row was removed.
func (s *ProductService) Delete(id, ownerID uint) (bool, error) {
	p, err := s.Get(id, ownerID)
	if err != nil || p == nil {
		return false, err
	}

	if p.Image != "" {
		if ok, derr := s.files.Delete(p.Image); !ok && derr != nil {
			log.Printf("orphaned image %s of product %d: %v", p.Image, p.ID, derr)
		}
	}

	if err := s.db.Delete(&models.Product{}, p.ID).Error; err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return true, nil
}

// DeleteAllForUser removes every product of the owner together with the
// image files, used on account deletion.
func (s *ProductService) DeleteAllForUser(ownerID uint) error {
	products, err := s.List(ownerID)
	if err != nil {
		return err
	}

	for _, p := range products {
		if p.Image == "" {
			continue
		}
		if ok, derr := s.files.Delete(p.Image); !ok && derr != nil {
			log.Printf("orphaned image %s of product %d: %v", p.Image, p.ID, derr)
		}
	}

	if err := s.db.Where("user_id = ?", ownerID).Delete(&models.Product{}).Error; err != nil {
		return fmt.Errorf("delete products: %w", err)
	}
	return nil
}
