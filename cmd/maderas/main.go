package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/maderas/backend/internal/config"
	"github.com/maderas/backend/internal/migration"
	"github.com/maderas/backend/internal/observability"
	"github.com/maderas/backend/internal/seed"
	"github.com/maderas/backend/internal/server"
	"github.com/maderas/backend/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
		seed.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
