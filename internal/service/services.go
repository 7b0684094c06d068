package service

import (
	"github.com/gameboxed/gameboxed/internal/config"
	"github.com/gameboxed/gameboxed/internal/repository"
)

type Services struct {
	Auth *AuthService
	User *UserService
	Game *GameService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Role, repos.Session, cfg),
		User: NewUserService(repos.User, repos.Session, repos.Game, repos.Collection),
		Game: NewGameService(repos.Game, repos.Rating, repos.Collection),
	}
}
