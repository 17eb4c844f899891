package handler

import (
	"arena/internal/app/game"
	"arena/internal/configs"
)

// AppDeps bundles the shared dependencies every handler needs.
type AppDeps struct {
	Registry   *game.Registry
	Controller *game.Controller
	Hub        *game.Hub
	Config     *configs.AppConfig
}
