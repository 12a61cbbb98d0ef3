package services

import (
	"api/database"
	"api/models"
	"api/scoring"
	"fmt"
	"strings"
)

// ListDisciplines returns all registered disciplines with their categories
func ListDisciplines() ([]models.Discipline, error) {
	var disciplines []models.Discipline
	if err := database.DB.Preload("Categories").Order("name").Find(&disciplines).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch disciplines: %w", err)
	}
	return disciplines, nil
}

// CreateDiscipline registers a new discipline. The scoring strategy is
// resolved from the name here, exactly once, and stored on the row; score
// submissions read the stored strategy and never look at the name again.
func CreateDiscipline(name string, usesLiveAmmo bool) (models.Discipline, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Discipline{}, fmt.Errorf("%w: discipline name is required", ErrValidation)
	}

	discipline := models.Discipline{
		Name:            name,
		ScoringStrategy: scoring.ResolveStrategy(name),
		UsesLiveAmmo:    usesLiveAmmo,
	}
	if err := database.DB.Create(&discipline).Error; err != nil {
		return models.Discipline{}, fmt.Errorf("failed to create discipline: %w", err)
	}
	return discipline, nil
}

// CreateCategory adds a category to a discipline, optionally restricted to
// one caliber
func CreateCategory(disciplineID, name string, allowedCaliber *string) (models.Category, error) {
	var discipline models.Discipline
	if err := database.DB.First(&discipline, "id = ?", disciplineID).Error; err != nil {
		return models.Category{}, fmt.Errorf("%w: discipline not found", ErrValidation)
	}

	category := models.Category{
		Name:           strings.TrimSpace(name),
		DisciplineID:   discipline.ID,
		AllowedCaliber: allowedCaliber,
	}
	if category.Name == "" {
		return models.Category{}, fmt.Errorf("%w: category name is required", ErrValidation)
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return models.Category{}, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}
