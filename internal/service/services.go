package service

import (
	"github.com/blogit/blogit-api/internal/config"
	"github.com/blogit/blogit-api/internal/repository"
)

type Services struct {
	Auth *AuthService
	Blog *BlogService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, cfg),
		Blog: NewBlogService(repos.Blog),
	}
}
