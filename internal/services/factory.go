package services

import (
	"fmt"

	"github.com/umanari145/blog-backend/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	BlogService BlogService
	MenuService MenuService
	AuthService AuthService
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos repositories.RepositoryManager) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository manager cannot be nil")
	}

	return &ServiceContainer{
		BlogService: NewBlogService(repos.Posts()),
		MenuService: NewMenuService(repos.Menus()),
		AuthService: NewAuthService(repos.Users()),
	}, nil
}
