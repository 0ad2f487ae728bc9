package util

import (
	"fmt"
	"strings"
)

// ValidateProductName checks name is non-empty and fits the column.
func ValidateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is empty")
	}
	if len(name) > 150 {
		return fmt.Errorf("name too long, max 150 characters")
	}
	return nil
}

// ValidateCategory checks category is non-empty and of reasonable length.
func ValidateCategory(category string) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if len(category) > 50 {
		return fmt.Errorf("category too long, max 50 characters")
	}
	return nil
}

// ValidatePrice checks price is non-negative and below a sanity cap.
func ValidatePrice(price int64) error {
	if price < 0 {
		return fmt.Errorf("price must not be negative, got %d", price)
	}
	if price > 1_000_000_000_000 {
		return fmt.Errorf("price too large, got %d", price)
	}
	return nil
}

// ValidateStock checks stock quantity is non-negative.
func ValidateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock must not be negative, got %d", stock)
	}
	return nil
}
